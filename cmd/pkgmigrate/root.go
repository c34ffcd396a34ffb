package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgmigrate/internal/messages"
)

const (
	flagConfig    = "config"
	flagADB       = "adb"
	flagVerbose   = "verbose"
	flagQuiet     = "quiet"
	flagFrom      = "from"
	flagTo        = "to"
	flagKeepGoing = "keep-going"
	flagYes       = "yes"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	adbPath    string
	verbose    bool
	quiet      bool
}

// pairOptions holds the device selection flags.
type pairOptions struct {
	from string
	to   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "V", false, messages.RootVersionFlag)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, flagConfig, "", messages.RootFlagConfig)
	flags.StringVar(&opts.adbPath, flagADB, "", messages.RootFlagADB)
	flags.BoolVarP(&opts.verbose, flagVerbose, "v", false, messages.RootFlagVerbose)
	flags.BoolVarP(&opts.quiet, flagQuiet, "q", false, messages.RootFlagQuiet)
	cmd.MarkFlagsMutuallyExclusive(flagVerbose, flagQuiet)

	cmd.AddCommand(
		newDevicesCmd(opts),
		newPlanCmd(opts),
		newExcessCmd(opts),
		newCompareCmd(opts),
		newMigrateCmd(opts),
		newDoctorCmd(opts),
	)
	return cmd
}

// addPairFlags registers --from and --to on cmd.
func addPairFlags(cmd *cobra.Command, pair *pairOptions) {
	cmd.Flags().StringVar(&pair.from, flagFrom, "", messages.FlagFrom)
	cmd.Flags().StringVar(&pair.to, flagTo, "", messages.FlagTo)
}
