// Package commands implements CLI command handlers for gitdrift.
package commands

import "github.com/spf13/cobra"

// NewRootCommand creates the gitdrift root command with all subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitdrift",
		Short: "Track how a command's CSV output drifts across git history",
		Long: `Gitdrift walks a repository's commit history oldest-first, re-executes a
measurement command against each checked-out commit, and joins the per-commit
CSV snapshots into longitudinal per-field charts.

Commands:
  run       Clone, walk, measure and render the drift report`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
