package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pkgmigrate/internal/gateway"
)

// recorder counts progress calls.
type recorder struct {
	labels []string
	totals []int
	steps  int
	done   int
}

func (r *recorder) Start(label string, total int) {
	r.labels = append(r.labels, label)
	r.totals = append(r.totals, total)
}

func (r *recorder) Step() { r.steps++ }

func (r *recorder) Done() { r.done++ }

// listingGateway serves canned package listings keyed by device and mode.
type listingGateway struct {
	gateway.Gateway

	thirdParty map[gateway.Device]string
	full       map[gateway.Device]string
	err        error
}

func (g *listingGateway) ListPackages(_ context.Context, device gateway.Device, thirdPartyOnly bool) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if thirdPartyOnly {
		return g.thirdParty[device], nil
	}
	return g.full[device], nil
}

func TestParse(t *testing.T) {
	rec := &recorder{}
	ids := Parse("package:com.a\npackage:com.b", rec)

	require.Equal(t, []string{"com.a", "com.b"}, ids)
	require.Equal(t, []int{2}, rec.totals)
	require.Equal(t, 2, rec.steps)
	require.Equal(t, 1, rec.done)
}

func TestParse_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n"} {
		rec := &recorder{}
		ids := Parse(raw, rec)

		require.NotNil(t, ids)
		require.Empty(t, ids)
		require.Equal(t, []int{0}, rec.totals)
		require.Zero(t, rec.steps)
		require.Equal(t, 1, rec.done)
	}
}

func TestParse_TrimsWhitespaceAndCarriageReturns(t *testing.T) {
	ids := Parse("  package:com.a \r\npackage: com.b\r\n", nil)
	require.Equal(t, []string{"com.a", "com.b"}, ids)
}

func TestParse_MalformedLinesPassThrough(t *testing.T) {
	ids := Parse("package:com.a\ncom.b\npackage:\nweird package:line", nil)
	require.Equal(t, []string{"com.a", "com.b", "", "weird package:line"}, ids)
}

func TestParse_BlankLinesPassThrough(t *testing.T) {
	rec := &recorder{}
	ids := Parse("package:com.a\n\npackage:com.b", rec)

	require.Equal(t, []string{"com.a", "", "com.b"}, ids)
	require.Equal(t, 3, rec.steps)
}

func TestParse_ArtifactPaths(t *testing.T) {
	raw := "package:/data/app/com.a-1/base.apk\npackage:/data/app/com.a-1/split_config.arm64_v8a.apk\n"
	require.Equal(t, []string{
		"/data/app/com.a-1/base.apk",
		"/data/app/com.a-1/split_config.arm64_v8a.apk",
	}, Parse(raw, nil))
}

func TestDiff_PreservesOrderAndExcludes(t *testing.T) {
	first := []string{"c", "a", "d", "b", "e"}
	second := []string{"b", "x", "c"}

	rec := &recorder{}
	got := Diff(first, second, rec)

	require.Equal(t, []string{"a", "d", "e"}, got)
	require.Equal(t, []int{len(first)}, rec.totals)
	require.Equal(t, len(first), rec.steps)
	require.Equal(t, 1, rec.done)
}

func TestDiff_Properties(t *testing.T) {
	cases := []struct {
		first  []string
		second []string
	}{
		{first: nil, second: nil},
		{first: []string{"a"}, second: nil},
		{first: []string{"a", "b", "c"}, second: []string{"b"}},
		{first: []string{"a", "a", "b"}, second: []string{"c"}},
		{first: []string{"com.Example"}, second: []string{"com.example"}},
	}
	for _, tc := range cases {
		got := Diff(tc.first, tc.second, nil)

		for _, id := range got {
			assert.NotContains(t, tc.second, id)
			assert.Contains(t, tc.first, id)
		}
		// Order follows first.
		idx := 0
		for _, id := range tc.first {
			if idx < len(got) && got[idx] == id {
				idx++
			}
		}
		assert.Equal(t, len(got), idx)

		assert.Empty(t, Diff(tc.first, tc.first, nil))
		assert.Equal(t, len(tc.first), len(Diff(tc.first, []string{}, nil)))
	}
}

func TestDiff_AgainstEmptyReturnsOriginal(t *testing.T) {
	first := []string{"com.a", "com.b"}
	require.Equal(t, first, Diff(first, nil, nil))
}

func TestDiff_ExactEquality(t *testing.T) {
	got := Diff([]string{"com.Example", "com.example "}, []string{"com.example"}, nil)
	require.Equal(t, []string{"com.Example", "com.example "}, got)
}

func TestPlan(t *testing.T) {
	gw := &listingGateway{
		thirdParty: map[gateway.Device]string{
			"giver": "package:com.a\npackage:com.b\npackage:com.c",
		},
		full: map[gateway.Device]string{
			"receiver": "package:android\npackage:com.b",
		},
	}

	plan, err := Plan(context.Background(), gw, "receiver", "giver", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"com.a", "com.c"}, plan)
}

func TestPlan_EmptyAfterFullMigration(t *testing.T) {
	gw := &listingGateway{
		thirdParty: map[gateway.Device]string{
			"giver": "package:com.a\npackage:com.b",
		},
		full: map[gateway.Device]string{
			"receiver": "package:android",
		},
	}

	plan, err := Plan(context.Background(), gw, "receiver", "giver", nil)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	// Simulate every planned package landing on the receiver.
	installed := gw.full["receiver"]
	for _, id := range plan {
		installed += "\npackage:" + id
	}
	gw.full["receiver"] = installed

	plan, err = Plan(context.Background(), gw, "receiver", "giver", nil)
	require.NoError(t, err)
	require.Empty(t, plan)
}

func TestPlan_SkipsSystemComponentsOnReceiver(t *testing.T) {
	gw := &listingGateway{
		thirdParty: map[gateway.Device]string{
			"giver": "package:com.google.android.youtube",
		},
		full: map[gateway.Device]string{
			"receiver": "package:com.google.android.youtube",
		},
	}

	plan, err := Plan(context.Background(), gw, "receiver", "giver", nil)
	require.NoError(t, err)
	require.Empty(t, plan)
}

func TestExcess(t *testing.T) {
	gw := &listingGateway{
		thirdParty: map[gateway.Device]string{
			"receiver": "package:com.a\npackage:com.only.here",
		},
		full: map[gateway.Device]string{
			"giver": "package:com.a\npackage:android",
		},
	}

	excess, err := Excess(context.Background(), gw, "receiver", "giver", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"com.only.here"}, excess)
}

func TestPlan_ListFailure(t *testing.T) {
	boom := errors.New("device offline")
	gw := &listingGateway{err: boom}

	_, err := Plan(context.Background(), gw, "receiver", "giver", nil)
	require.ErrorIs(t, err, boom)

	var listErr *ListError
	require.ErrorAs(t, err, &listErr)
	require.Equal(t, gateway.Device("receiver"), listErr.Device)
	require.False(t, listErr.ThirdPartyOnly)
	require.Contains(t, err.Error(), "receiver")
}

func TestUnifiedDiff(t *testing.T) {
	diff := UnifiedDiff("giver", "receiver", []string{"com.b", "com.a"}, []string{"com.a", "com.c"})

	require.Contains(t, diff, "--- giver")
	require.Contains(t, diff, "+++ receiver")
	require.Contains(t, diff, "-com.b")
	require.Contains(t, diff, "+com.c")
	require.NotContains(t, diff, "-com.a")
}

func TestUnifiedDiff_Identical(t *testing.T) {
	require.Empty(t, UnifiedDiff("a", "b", []string{"x", "y"}, []string{"y", "x"}))
}
