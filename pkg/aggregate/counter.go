package aggregate

import (
	"sort"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Counter counts occurrences of a field value across records.
type Counter struct {
	field  string
	counts map[string]int
}

// NewCounter creates a counter over the given field.
func NewCounter(field string) *Counter {
	return &Counter{
		field:  field,
		counts: make(map[string]int),
	}
}

func (c *Counter) Name() string {
	return "count:" + c.field
}

func (c *Counter) Add(rec parser.Record) {
	c.counts[fieldString(rec, c.field)]++
}

// FieldCount pairs a field value with its occurrence count.
type FieldCount struct {
	Value string
	Count int
}

// Top returns the n most common values, ties broken alphabetically for
// deterministic output.
func (c *Counter) Top(n int) []FieldCount {
	out := make([]FieldCount, 0, len(c.counts))
	for v, cnt := range c.counts {
		out = append(out, FieldCount{Value: v, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Total returns the number of records counted.
func (c *Counter) Total() int {
	total := 0
	for _, cnt := range c.counts {
		total += cnt
	}
	return total
}

// Result returns value → count for every observed value.
func (c *Counter) Result() map[string]any {
	out := make(map[string]any, len(c.counts))
	for v, cnt := range c.counts {
		out[v] = cnt
	}
	return out
}
