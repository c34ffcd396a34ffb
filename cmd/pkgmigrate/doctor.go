package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgmigrate/internal/adb"
	"github.com/conn-castle/pkgmigrate/internal/doctor"
	"github.com/conn-castle/pkgmigrate/internal/messages"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			_, _ = fmt.Fprintln(out, messages.DoctorHeader)

			var allResults []doctor.Result

			configResults, cfg := doctor.CheckConfig(opts.configPath)
			allResults = append(allResults, configResults...)
			if opts.adbPath != "" {
				cfg.ADB.Path = opts.adbPath
			}
			client := newClient(cfg.ADB.Path, adb.ExecRunner{Timeout: cfg.ADBTimeout()})

			adbResults := doctor.CheckADB(ctx, client)
			allResults = append(allResults, adbResults...)
			// Listing devices needs a working adb.
			if !doctor.HasFailure(adbResults) {
				allResults = append(allResults, doctor.CheckDevices(ctx, client)...)
			}
			allResults = append(allResults, doctor.CheckStaging(cfg.Migrate.StagingDir)...)

			for _, r := range allResults {
				printResult(out, r)
			}
			if doctor.HasFailure(allResults) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return fmt.Errorf(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		for i, line := range strings.Split(r.Recommendation, "\n") {
			prefix := messages.DoctorRecommendationPrefix
			if i > 0 {
				prefix = messages.DoctorRecommendationIndent
			}
			_, _ = fmt.Fprintf(out, "%s%s\n", prefix, line)
		}
	}
}
