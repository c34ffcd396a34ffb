package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgmigrate/internal/inventory"
	"github.com/conn-castle/pkgmigrate/internal/messages"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var pair pairOptions
	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			giving, receiving, err := a.resolvePair(cmd.Context(), pair)
			if err != nil {
				return err
			}
			plan, err := inventory.Plan(cmd.Context(), a.client, receiving, giving, a.progress())
			if err != nil {
				return err
			}
			a.debugf(messages.PlanSizeFmt, len(plan), giving, receiving)
			printIDs(a.out, plan)
			return nil
		},
	}
	addPairFlags(cmd, &pair)
	return cmd
}

func newExcessCmd(opts *rootOptions) *cobra.Command {
	var pair pairOptions
	cmd := &cobra.Command{
		Use:   messages.ExcessUse,
		Short: messages.ExcessShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			giving, receiving, err := a.resolvePair(cmd.Context(), pair)
			if err != nil {
				return err
			}
			excess, err := inventory.Excess(cmd.Context(), a.client, receiving, giving, a.progress())
			if err != nil {
				return err
			}
			printIDs(a.out, excess)
			return nil
		},
	}
	addPairFlags(cmd, &pair)
	return cmd
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var pair pairOptions
	cmd := &cobra.Command{
		Use:   messages.CompareUse,
		Short: messages.CompareShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			giving, receiving, err := a.resolvePair(cmd.Context(), pair)
			if err != nil {
				return err
			}
			rep := a.progress()
			from, err := inventory.ThirdParty(cmd.Context(), a.client, giving, rep)
			if err != nil {
				return err
			}
			to, err := inventory.ThirdParty(cmd.Context(), a.client, receiving, rep)
			if err != nil {
				return err
			}
			diff := inventory.UnifiedDiff(giving.String(), receiving.String(), from, to)
			if diff == "" {
				_, _ = fmt.Fprintln(a.out, messages.CompareIdentical)
				return nil
			}
			_, _ = fmt.Fprint(a.out, diff)
			return nil
		},
	}
	addPairFlags(cmd, &pair)
	return cmd
}

// printIDs writes one package id per line.
func printIDs(out io.Writer, ids []string) {
	for _, id := range ids {
		_, _ = fmt.Fprintln(out, id)
	}
}
