package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/logpilot/logpilot/pkg/cache"
	"github.com/logpilot/logpilot/pkg/output"
	"github.com/logpilot/logpilot/pkg/search"
)

// SearchOptions holds command-line options for the search command.
type SearchOptions struct {
	Fields   []string
	Since    string
	Until    string
	Format   string
	Output   string
	Limit    int
	CacheURL string
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <log-file> <pattern>",
		Short: "Search a log file with a regular expression",
		Long: `Search parsed records for a pattern. Matching is case-insensitive
and tests every field value unless --field restricts it.

Time bounds accept ISO 8601 ("2024-03-01T10:00:00"), Apache
("01/Mar/2024:10:00:00 +0000"), and date-only ("2024-03-01") formats.

With --cache-url, results are cached in Redis keyed by file and query.
An unreachable cache is ignored, never an error.

Examples:
  logpilot search app.log 'timeout'
  logpilot search --field level app.log 'error'
  logpilot search --since 2024-03-01 --until 2024-03-02 app.log 'login'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Fields, "field", nil, "Restrict matching to field(s) (can be repeated)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only records at or after this time")
	cmd.Flags().StringVar(&opts.Until, "until", "", "Only records at or before this time")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Input format (auto|json|apache|syslog|raw)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Stop after this many matches (0 = no limit)")
	cmd.Flags().StringVar(&opts.CacheURL, "cache-url", "", "Redis URL for result caching (e.g. redis://localhost:6379/0)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, opts *SearchOptions) error {
	logFile, pattern := args[0], args[1]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	chain, err := buildSearchChain(pattern, opts)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output)
	if err != nil {
		return err
	}

	qc := cache.New(ctx, opts.CacheURL)
	defer qc.Close()
	key := cache.Key(logFile, map[string]string{
		"pattern": pattern,
		"fields":  strings.Join(opts.Fields, ","),
		"since":   opts.Since,
		"until":   opts.Until,
		"format":  opts.Format,
	})

	matches, hit := qc.Get(ctx, key)
	if !hit {
		records, err := loadRecords(ctx, logFile, opts.Format, 0, 0)
		if err != nil {
			return err
		}
		matches = chain.Apply(records)
		qc.Set(ctx, key, matches)
	}

	matches = truncate(matches, opts.Limit)
	if err := formatter.Format(os.Stdout, matches); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

func buildSearchChain(pattern string, opts *SearchOptions) (*search.FilterChain, error) {
	var regexOpts []search.RegexOption
	if len(opts.Fields) > 0 {
		regexOpts = append(regexOpts, search.WithFields(opts.Fields...))
	}
	rs, err := search.NewRegexSearch(pattern, regexOpts...)
	if err != nil {
		return nil, err
	}
	chain := search.NewFilterChain().Add(rs)

	var since, until time.Time
	if opts.Since != "" {
		if since, err = search.ParseTime(opts.Since); err != nil {
			return nil, fmt.Errorf("invalid --since: %w", err)
		}
	}
	if opts.Until != "" {
		if until, err = search.ParseTime(opts.Until); err != nil {
			return nil, fmt.Errorf("invalid --until: %w", err)
		}
	}
	if !since.IsZero() || !until.IsZero() {
		chain.Add(search.NewTimeRangeFilter(since, until))
	}
	return chain, nil
}
