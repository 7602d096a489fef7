// Package cli provides the command-line interface for logpilot.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logpilot/logpilot/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logpilot",
		Short: "Parse, search, and analyze log files",
		Long: `LogPilot is a log analysis tool that parses common log formats and
runs searches, statistics, and alert rules over them.

It understands:
  - NDJSON (one JSON object per line)
  - Apache/NGINX access logs (common and combined)
  - RFC 3164 syslog
  - Unstructured text (pass-through)

The format is detected automatically from the first line of each file,
or can be forced with --format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewAlertCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
