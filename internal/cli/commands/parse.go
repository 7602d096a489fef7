package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/logpilot/logpilot/pkg/output"
	"github.com/logpilot/logpilot/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Format  string
	Output  string
	Limit   int
	Workers int
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <log-file>",
		Short: "Parse a log file into structured records",
		Long: `Parse a log file and print the structured records.

The format is detected from the first non-blank line unless --format is
given. Gzip and zstd compressed files are decompressed transparently.

With --workers the file is split into byte ranges and parsed in
parallel. Each range detects its own format, so parallel parsing is
only available with automatic detection and uncompressed files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Input format (auto|json|apache|syslog|raw)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Stop after this many records (0 = no limit)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Parse in parallel with this many workers (0 = streaming)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := loadRecords(ctx, logFile, opts.Format, opts.Workers, opts.Limit)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output)
	if err != nil {
		return err
	}
	if err := formatter.Format(os.Stdout, records); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

// loadRecords parses a log file with the requested format and concurrency.
// A limit of 0 means all records.
func loadRecords(ctx context.Context, path, format string, workers, limit int) ([]parser.Record, error) {
	if workers > 1 {
		if format != "" && format != "auto" {
			return nil, fmt.Errorf("--workers requires automatic format detection, not --format %s", format)
		}
		records, err := parser.ParseFileParallel(path, workers)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return truncate(records, limit), nil
	}

	p, err := parserFor(format)
	if err != nil {
		return nil, err
	}
	stream, err := p.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer stream.Close()

	if limit <= 0 {
		return stream.Collect(ctx)
	}
	var records []parser.Record
	for len(records) < limit {
		rec, err := stream.Next(ctx)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parserFor(format string) (parser.Parser, error) {
	switch format {
	case "", "auto":
		return parser.NewAutoParser(), nil
	case "json":
		return parser.NewJSONParser(), nil
	case "apache":
		return parser.NewApacheParser(), nil
	case "syslog":
		return parser.NewSyslogParser(), nil
	case "raw":
		return parser.NewRawParser(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (use auto, json, apache, syslog, or raw)", format)
	}
}

func truncate(records []parser.Record, limit int) []parser.Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
