package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logpilot/logpilot/pkg/parser"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect the format of a log file",
		Long: `Report the log format detected from the first non-blank line.

Formats:
  json     NDJSON (line starts with "{")
  apache   Apache/NGINX access log (host ident user [timestamp ...)
  syslog   RFC 3164 syslog (optional <priority> then month abbreviation)
  raw      Anything else

Compressed files (.gz, .zst) are inspected after decompression.

Example:
  logpilot detect /var/log/access.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runDetect(args []string, opts *DetectOptions) error {
	logFile := args[0]

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	format, err := parser.DetectFile(logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			File   string `json:"file"`
			Format string `json:"format"`
		}{File: logFile, Format: format.String()})
	default:
		fmt.Printf("%s: %s\n", logFile, format)
		return nil
	}
}
