package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Percentiles collects a numeric field and computes nearest-rank
// percentile statistics. Records without a coercible value are ignored.
type Percentiles struct {
	field  string
	values []float64
	sorted bool
}

// NewPercentiles creates a percentile aggregator over the given field.
func NewPercentiles(field string) *Percentiles {
	return &Percentiles{field: field}
}

func (p *Percentiles) Name() string {
	return "percentiles:" + p.field
}

func (p *Percentiles) Add(rec parser.Record) {
	if v, ok := rec.Float(p.field); ok {
		p.values = append(p.values, v)
		p.sorted = false
	}
}

// Len returns the number of collected values.
func (p *Percentiles) Len() int {
	return len(p.values)
}

func (p *Percentiles) ensureSorted() {
	if !p.sorted {
		sort.Float64s(p.values)
		p.sorted = true
	}
}

// Percentile returns the nearest-rank pth percentile, 0 with no samples.
func (p *Percentiles) Percentile(pct float64) float64 {
	p.ensureSorted()
	if len(p.values) == 0 {
		return 0
	}
	rank := int(math.Ceil(pct/100*float64(len(p.values)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(p.values) {
		rank = len(p.values) - 1
	}
	return p.values[rank]
}

// Summary computes the requested percentiles (default p50/p90/p95/p99)
// plus min, max, mean, and count.
func (p *Percentiles) Summary(pcts ...float64) map[string]float64 {
	p.ensureSorted()
	if len(pcts) == 0 {
		pcts = []float64{50, 90, 95, 99}
	}

	out := make(map[string]float64, len(pcts)+4)
	for _, pct := range pcts {
		out[fmt.Sprintf("p%d", int(pct))] = p.Percentile(pct)
	}
	if len(p.values) > 0 {
		out["min"] = p.values[0]
		out["max"] = p.values[len(p.values)-1]
		var sum float64
		for _, v := range p.values {
			sum += v
		}
		out["mean"] = sum / float64(len(p.values))
	}
	out["count"] = float64(len(p.values))
	return out
}

// Result returns the summary with the default percentile set.
func (p *Percentiles) Result() map[string]any {
	summary := p.Summary()
	out := make(map[string]any, len(summary))
	for k, v := range summary {
		out[k] = v
	}
	return out
}
