package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/logpilot/logpilot/pkg/alerts"
	"github.com/logpilot/logpilot/pkg/config"
	"github.com/logpilot/logpilot/pkg/parser"
)

// AlertOptions holds command-line options for the alert command.
type AlertOptions struct {
	Format  string
	Quiet   bool
	Verbose bool
}

// NewAlertCommand creates the alert command.
func NewAlertCommand() *cobra.Command {
	opts := &AlertOptions{}

	cmd := &cobra.Command{
		Use:   "alert <config-file> <log-file>",
		Short: "Run alert rules over a log file",
		Long: `Evaluate the alert rules from the configuration file against every
record in the log file, in order.

Rule types:
  match       Field equals a value or matches a regex
  threshold   Numeric field above or below a bound
  anomaly     Streaming z-score anomaly detection on a numeric field

Each rule has a cooldown; records matching inside the cooldown window
are suppressed, not queued. Fired alerts go to the rule's configured
channels (webhook, log).

Exit codes:
  0 - No alerts fired
  1 - At least one alert fired
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Input format (auto|json|apache|syslog|raw)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-alert lines")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log channel sends and suppressions")

	return cmd
}

func runAlert(cmd *cobra.Command, args []string, opts *AlertOptions) error {
	configPath, logFile := args[0], args[1]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := zap.NewNop()
	if opts.Verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = log.Sync() }()
	}

	engine, err := alerts.NewEngineFromConfig(cfg, log)
	if err != nil {
		return fmt.Errorf("building rules engine: %w", err)
	}

	p, err := parserFor(opts.Format)
	if err != nil {
		return err
	}
	stream, err := p.ParseFile(logFile)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", logFile, err)
	}
	defer stream.Close()

	total := 0
	fired := 0
	for {
		rec, err := stream.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", logFile, err)
		}
		total++
		for _, name := range engine.Evaluate(rec) {
			fired++
			if !opts.Quiet {
				fmt.Printf("ALERT %s: %s\n", name, summarizeRecord(rec))
			}
		}
	}

	fmt.Fprintf(os.Stderr, "%d records, %d alerts\n", total, fired)
	if fired > 0 {
		ExitCode = 1
	}
	return nil
}

// summarizeRecord renders the most useful field for a one-line alert.
func summarizeRecord(rec parser.Record) string {
	if msg, ok := rec.String("message"); ok {
		return msg
	}
	return fmt.Sprintf("%v", map[string]any(rec))
}
