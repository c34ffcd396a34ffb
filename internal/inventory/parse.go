// Package inventory enumerates installed packages and computes the
// differences that drive a migration.
package inventory

import (
	"context"
	"strings"

	"github.com/conn-castle/pkgmigrate/internal/gateway"
	"github.com/conn-castle/pkgmigrate/internal/messages"
	"github.com/conn-castle/pkgmigrate/internal/progress"
)

// Parse turns a raw marker-prefixed listing into identifiers in source order.
// Each line is trimmed and stripped of the package marker. Lines are not
// validated: a blank or marker-only line yields an empty identifier.
func Parse(raw string, rep progress.Reporter) []string {
	rep = progress.OrNop(rep)
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		rep.Start(messages.ProgressParsingList, 0)
		rep.Done()
		return []string{}
	}

	lines := strings.Split(trimmed, "\n")
	rep.Start(messages.ProgressParsingList, len(lines))
	defer rep.Done()

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		rep.Step()
		ids = append(ids, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), gateway.PackageMarker)))
	}
	return ids
}

// ThirdParty lists the user-installed packages on device.
func ThirdParty(ctx context.Context, gw gateway.Gateway, device gateway.Device, rep progress.Reporter) ([]string, error) {
	return list(ctx, gw, device, true, rep)
}

// Full lists every installed package on device, system components included.
func Full(ctx context.Context, gw gateway.Gateway, device gateway.Device, rep progress.Reporter) ([]string, error) {
	return list(ctx, gw, device, false, rep)
}

func list(ctx context.Context, gw gateway.Gateway, device gateway.Device, thirdPartyOnly bool, rep progress.Reporter) ([]string, error) {
	raw, err := gw.ListPackages(ctx, device, thirdPartyOnly)
	if err != nil {
		return nil, &ListError{Device: device, ThirdPartyOnly: thirdPartyOnly, Err: err}
	}
	return Parse(raw, rep), nil
}
