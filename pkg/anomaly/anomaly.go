// Package anomaly provides streaming z-score anomaly detection for numeric
// log fields, using Welford's online algorithm for incremental mean and
// variance with O(1) state.
package anomaly

import (
	"math"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Defaults for detector construction.
const (
	DefaultThreshold  = 3.0
	DefaultMinSamples = 30
)

// Detector watches one numeric field across a record stream and flags
// values whose z-score against the running distribution exceeds the
// threshold. Not safe for concurrent use; each goroutine needs its own
// instance or external synchronization.
type Detector struct {
	field      string
	threshold  float64
	minSamples int

	// Welford state: sample count, running mean, and sum of squared
	// deviations from the running mean.
	n    int
	mean float64
	m2   float64
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold sets the |z| magnitude considered anomalous (default 3.0).
func WithThreshold(z float64) Option {
	return func(d *Detector) {
		if z > 0 {
			d.threshold = z
		}
	}
}

// WithMinSamples sets how many observations must accumulate before
// anomalies are reported (default 30). Prevents warm-up false positives.
func WithMinSamples(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.minSamples = n
		}
	}
}

// New creates a detector for the given record field.
func New(field string, opts ...Option) *Detector {
	d := &Detector{
		field:      field,
		threshold:  DefaultThreshold,
		minSamples: DefaultMinSamples,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result is the outcome of feeding one record to the detector.
type Result struct {
	// Value is the numeric value extracted from the record.
	Value float64

	// ZScore is |value - mean| / std. Valid only when HasZScore is true;
	// it stays unset during warm-up and when the distribution has zero
	// spread.
	ZScore    float64
	HasZScore bool

	// IsAnomaly is true when the z-score exceeds the threshold.
	IsAnomaly bool

	// Skipped is true when the field was absent or not numeric; the
	// detector state was left untouched.
	Skipped bool
}

// Field returns the record key the detector monitors.
func (d *Detector) Field() string {
	return d.field
}

// Count returns the number of samples folded into the statistics.
func (d *Detector) Count() int {
	return d.n
}

// Mean returns the running mean.
func (d *Detector) Mean() float64 {
	return d.mean
}

// Variance returns the sample variance, 0 until two samples are seen.
func (d *Detector) Variance() float64 {
	if d.n > 1 {
		return d.m2 / float64(d.n-1)
	}
	return 0
}

// Std returns the sample standard deviation.
func (d *Detector) Std() float64 {
	return math.Sqrt(d.Variance())
}

// Update feeds one record to the detector. The verdict is computed against
// the distribution of all prior samples before the new value is folded in,
// so a sample is never judged against statistics it has already biased.
func (d *Detector) Update(rec parser.Record) Result {
	x, ok := rec.Float(d.field)
	if !ok {
		return Result{Skipped: true}
	}

	res := Result{Value: x}
	if std := d.Std(); d.n >= d.minSamples && std > 0 {
		res.ZScore = math.Abs(x-d.mean) / std
		res.HasZScore = true
		res.IsAnomaly = res.ZScore > d.threshold
	}

	d.n++
	delta := x - d.mean
	d.mean += delta / float64(d.n)
	delta2 := x - d.mean
	d.m2 += delta * delta2

	return res
}

// Reset wipes all accumulated state, e.g. for periodic baseline resets.
func (d *Detector) Reset() {
	d.n = 0
	d.mean = 0
	d.m2 = 0
}

// Predicate wraps the detector for use with the alert rules engine: it
// updates the detector with each record and reports whether the record
// was anomalous.
func (d *Detector) Predicate() func(parser.Record) bool {
	return func(rec parser.Record) bool {
		return d.Update(rec).IsAnomaly
	}
}
