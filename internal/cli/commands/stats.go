package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logpilot/logpilot/pkg/aggregate"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	CountBy     []string
	GroupBy     string
	Percentiles string
	Format      string
	Top         int
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <log-file>",
		Short: "Compute aggregate statistics over a log file",
		Long: `Run aggregations over parsed records and print the results as JSON.

Aggregations:
  --count-by FIELD      Count distinct values of a field (can be repeated)
  --group-by FIELD      Record counts per group
  --percentiles FIELD   p50/p90/p95/p99 plus min, max, and mean of a
                        numeric field

Examples:
  logpilot stats --count-by level app.log
  logpilot stats --count-by status --count-by method access.log
  logpilot stats --percentiles bytes access.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.CountBy, "count-by", nil, "Count values of field (can be repeated)")
	cmd.Flags().StringVar(&opts.GroupBy, "group-by", "", "Group records by field")
	cmd.Flags().StringVar(&opts.Percentiles, "percentiles", "", "Summarize numeric field")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Input format (auto|json|apache|syslog|raw)")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Limit counters to the N most frequent values (0 = all)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, opts *StatsOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	aggs := buildAggregators(opts)
	if len(aggs) == 0 {
		return fmt.Errorf("no aggregation requested (use --count-by, --group-by, or --percentiles)")
	}

	records, err := loadRecords(ctx, logFile, opts.Format, 0, 0)
	if err != nil {
		return err
	}
	for _, rec := range records {
		for _, agg := range aggs {
			agg.Add(rec)
		}
	}

	results := map[string]any{
		"file":    logFile,
		"records": len(records),
	}
	for _, agg := range aggs {
		result := agg.Result()
		if opts.Top > 0 {
			if c, ok := agg.(*aggregate.Counter); ok {
				result["top"] = c.Top(opts.Top)
			}
		}
		results[agg.Name()] = result
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func buildAggregators(opts *StatsOptions) []aggregate.Aggregator {
	var aggs []aggregate.Aggregator
	for _, field := range opts.CountBy {
		aggs = append(aggs, aggregate.NewCounter(field))
	}
	if opts.GroupBy != "" {
		aggs = append(aggs, aggregate.NewGroupBy(opts.GroupBy))
	}
	if opts.Percentiles != "" {
		aggs = append(aggs, aggregate.NewPercentiles(opts.Percentiles))
	}
	return aggs
}
