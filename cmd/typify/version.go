package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tanema/typify/src/conf"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the typify version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		color.New(color.Bold).Fprintln(cmd.OutOrStdout(), conf.VERSION)
		fmt.Fprintln(cmd.OutOrStdout(), conf.Copyright())
		if cfg != nil && cfg.Path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\n", cfg.Path)
		}
		return nil
	},
}
