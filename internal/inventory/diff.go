package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/pkgmigrate/internal/gateway"
	"github.com/conn-castle/pkgmigrate/internal/messages"
	"github.com/conn-castle/pkgmigrate/internal/progress"
)

// ListError reports a failed inventory listing.
type ListError struct {
	Device         gateway.Device
	ThirdPartyOnly bool
	Err            error
}

func (e *ListError) Error() string {
	kind := messages.InventoryKindFull
	if e.ThirdPartyOnly {
		kind = messages.InventoryKindThirdParty
	}
	return fmt.Sprintf(messages.InventoryListFailedFmt, kind, e.Device, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// Diff returns the elements of first that do not appear in second, in the
// order they appear in first. Comparison is exact string equality.
func Diff(first []string, second []string, rep progress.Reporter) []string {
	rep = progress.OrNop(rep)
	rep.Start(messages.ProgressComparingLists, len(first))
	defer rep.Done()

	present := make(map[string]struct{}, len(second))
	for _, id := range second {
		present[id] = struct{}{}
	}

	missing := make([]string, 0, len(first))
	for _, id := range first {
		rep.Step()
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Excess returns the third-party packages on receiving that the giving
// device does not have installed at all.
func Excess(ctx context.Context, gw gateway.Gateway, receiving gateway.Device, giving gateway.Device, rep progress.Reporter) ([]string, error) {
	receivingIDs, err := ThirdParty(ctx, gw, receiving, rep)
	if err != nil {
		return nil, err
	}
	givingIDs, err := Full(ctx, gw, giving, rep)
	if err != nil {
		return nil, err
	}
	return Diff(receivingIDs, givingIDs, rep), nil
}

// Plan returns the third-party packages on giving that the receiving device
// does not have installed at all. Using the full receiving inventory keeps
// packages that already exist as system components off the plan.
func Plan(ctx context.Context, gw gateway.Gateway, receiving gateway.Device, giving gateway.Device, rep progress.Reporter) ([]string, error) {
	receivingIDs, err := Full(ctx, gw, receiving, rep)
	if err != nil {
		return nil, err
	}
	givingIDs, err := ThirdParty(ctx, gw, giving, rep)
	if err != nil {
		return nil, err
	}
	return Diff(givingIDs, receivingIDs, rep), nil
}

// UnifiedDiff renders two inventories as a unified diff, one identifier per
// line, after sorting each side. It returns an empty string when they match.
func UnifiedDiff(fromName string, toName string, from []string, to []string) string {
	return udiff.Unified(fromName, toName, sortedLines(from), sortedLines(to))
}

func sortedLines(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\n") + "\n"
}
