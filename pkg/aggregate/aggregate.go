// Package aggregate provides streaming aggregations over parsed records:
// value counting, grouping, and numeric percentiles.
package aggregate

import (
	"fmt"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Aggregator consumes records one at a time and produces a summary
// mapping. All built-in aggregators and aggregator plugins satisfy it.
type Aggregator interface {
	Name() string
	Add(rec parser.Record)
	Result() map[string]any
}

// fieldString renders a record field for use as a bucket key.
// Absent fields group under "unknown".
func fieldString(rec parser.Record, field string) string {
	v, ok := rec[field]
	if !ok {
		return "unknown"
	}
	return fmt.Sprint(v)
}
