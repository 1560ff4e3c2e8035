package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	fixDryRun bool
	fixNoLint bool
	fixBackup bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Annotate untyped declarations in place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger, !fixNoLint, os.Stderr)
		if err != nil {
			return err
		}
		results, err := a.fixFiles(cmd.Context(), args, fixOptions{dryRun: fixDryRun, backup: fixBackup})
		total := 0
		for _, res := range results {
			total += res.edits
			if fixDryRun {
				writePreview(cmd.OutOrStdout(), res)
			}
		}
		if err != nil {
			return err
		}
		verb := "applied"
		if fixDryRun {
			verb = "planned"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d edits in %d files\n", verb, total, len(args))
		return nil
	},
}

func init() {
	fixCmd.Flags().BoolVarP(&fixDryRun, "dry-run", "n", false, "print the changes instead of writing them")
	fixCmd.Flags().BoolVar(&fixNoLint, "no-lint", false, "do not ask the linter for hints")
	fixCmd.Flags().BoolVar(&fixBackup, "backup", false, "keep a timestamped copy of every rewritten file")
}
