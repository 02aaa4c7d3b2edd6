// Package commands wires the calendar-editor command line.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// New returns the root command. Without a subcommand it serves the HTTP API.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar-editor",
		Short: "Serve and inspect an in-memory calendar event editor.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}
	cmd.SetOut(color.Output)

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addContrast(topLevel)
	addVersion(topLevel)
}
