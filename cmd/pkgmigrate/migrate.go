package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgmigrate/internal/inventory"
	"github.com/conn-castle/pkgmigrate/internal/messages"
	"github.com/conn-castle/pkgmigrate/internal/migrate"
	"github.com/conn-castle/pkgmigrate/internal/staging"
)

// Test seams.
var (
	lockDevice  = staging.LockDevice
	openStaging = func(root string) (*staging.Run, error) {
		return staging.Open(staging.RealSystem{}, root)
	}
)

type migrateOptions struct {
	pair      pairOptions
	keepGoing bool
	yes       bool
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	mopts := &migrateOptions{}
	cmd := &cobra.Command{
		Use:   messages.MigrateUse,
		Short: messages.MigrateShort,
		Long:  messages.MigrateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			return runMigrate(cmd, a, mopts)
		},
	}
	addPairFlags(cmd, &mopts.pair)
	cmd.Flags().BoolVar(&mopts.keepGoing, flagKeepGoing, false, messages.MigrateFlagKeepGoing)
	cmd.Flags().BoolVarP(&mopts.yes, flagYes, "y", false, messages.MigrateFlagYes)
	return cmd
}

func runMigrate(cmd *cobra.Command, a *app, mopts *migrateOptions) (err error) {
	ctx := cmd.Context()
	giving, receiving, err := a.resolvePair(ctx, mopts.pair)
	if err != nil {
		return err
	}

	unlock, err := lockDevice(a.cfg.Migrate.StagingDir, receiving.String(), a.cfg.LockTimeout())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, unlock())
	}()

	plan, err := inventory.Plan(ctx, a.client, receiving, giving, a.progress())
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		_, _ = fmt.Fprintf(a.out, messages.MigrateNothingFmt, giving, receiving)
		return nil
	}

	_, _ = fmt.Fprintf(a.out, messages.MigratePlanHeaderFmt, len(plan), giving, receiving)
	printIDs(a.out, plan)

	if !mopts.yes && a.cfg.ShouldConfirm() && isInteractive() {
		proceed := false
		if err := newUI().Confirm(fmt.Sprintf(messages.MigrateConfirmFmt, len(plan), receiving), &proceed); err != nil {
			return err
		}
		if !proceed {
			_, _ = fmt.Fprintln(a.out, messages.MigrateCancelled)
			return nil
		}
	}

	run, err := openStaging(a.cfg.Migrate.StagingDir)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, run.Close())
	}()
	a.debugf(messages.MigrateStagingDirFmt, run.Dir())

	policy := a.cfg.Policy()
	if mopts.keepGoing {
		policy = migrate.PolicyContinue
	}
	executor := migrate.New(a.client, run,
		migrate.WithPolicy(policy),
		migrate.WithAuxDataRoot(a.cfg.Migrate.AuxDataRoot),
		migrate.WithEvents(a.renderEvent),
	)
	report, err := executor.Migrate(ctx, plan, receiving, giving)
	printSummary(a.out, report, len(plan))
	return err
}

// renderEvent prints executor progress.
func (a *app) renderEvent(ev migrate.Event) {
	switch ev.Kind {
	case migrate.EventVerificationDisabled:
		a.debugf(messages.MigrateVerificationDisabled)
	case migrate.EventVerificationRestored:
		a.debugf(messages.MigrateVerificationRestored)
	case migrate.EventStart:
		a.debugf(messages.MigrateStartFmt, ev.Index, ev.Total, ev.PackageID)
	case migrate.EventAuxData:
		a.debugf(messages.MigrateAuxDataFmt, ev.PackageID)
	case migrate.EventDone:
		if !a.opts.quiet {
			_, _ = fmt.Fprintf(a.out, messages.MigrateResultLineFmt, ev.Index, ev.Total, color.GreenString(messages.MigrateStatusOK), ev.PackageID)
		}
	case migrate.EventFailed:
		_, _ = fmt.Fprintf(a.out, messages.MigrateResultLineFmt, ev.Index, ev.Total, color.RedString(messages.MigrateStatusFail), ev.PackageID)
	}
}

// printSummary reports counts, failed packages, and packages never attempted.
func printSummary(out io.Writer, report migrate.Report, planned int) {
	succeeded := len(report.Succeeded())
	summary := fmt.Sprintf(messages.MigrateSummaryFmt, succeeded, planned)
	if succeeded == planned {
		_, _ = fmt.Fprintln(out, color.GreenString(summary))
		return
	}
	_, _ = fmt.Fprintln(out, color.YellowString(summary))
	for _, res := range report.Failed() {
		op := migrate.Op("")
		var pkgErr *migrate.PackageError
		if errors.As(res.Err, &pkgErr) {
			op = pkgErr.Op
		}
		_, _ = fmt.Fprintf(out, messages.MigrateFailedItemFmt, res.PackageID, op)
	}
	if len(report.Skipped) > 0 {
		_, _ = fmt.Fprintf(out, messages.MigrateSkippedHeaderFmt, len(report.Skipped))
		for _, id := range report.Skipped {
			_, _ = fmt.Fprintf(out, messages.MigrateSkippedItemFmt, id)
		}
	}
}
