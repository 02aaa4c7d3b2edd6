package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/example/calendar-editor/internal/commands.version=...".
var version = ""

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the calendar-editor version.",
		Example: `
calendar-editor version
`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), resolveVersion())
		},
	}

	topLevel.AddCommand(cmd)
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}
