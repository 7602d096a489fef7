package aggregate

import (
	"sort"

	"github.com/logpilot/logpilot/pkg/parser"
)

// GroupBy buckets records by the value of a field.
type GroupBy struct {
	field  string
	groups map[string][]parser.Record
}

// NewGroupBy creates a grouping aggregator over the given field.
func NewGroupBy(field string) *GroupBy {
	return &GroupBy{
		field:  field,
		groups: make(map[string][]parser.Record),
	}
}

func (g *GroupBy) Name() string {
	return "group:" + g.field
}

func (g *GroupBy) Add(rec parser.Record) {
	key := fieldString(rec, g.field)
	g.groups[key] = append(g.groups[key], rec)
}

// Get returns the bucket for a key, nil when the key was never seen.
func (g *GroupBy) Get(key string) []parser.Record {
	return g.groups[key]
}

// Keys returns the bucket keys in sorted order.
func (g *GroupBy) Keys() []string {
	keys := make([]string, 0, len(g.groups))
	for k := range g.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Counts returns bucket sizes by key.
func (g *GroupBy) Counts() map[string]int {
	out := make(map[string]int, len(g.groups))
	for k, bucket := range g.groups {
		out[k] = len(bucket)
	}
	return out
}

// Len returns the number of distinct buckets.
func (g *GroupBy) Len() int {
	return len(g.groups)
}

// Result returns key → bucket size.
func (g *GroupBy) Result() map[string]any {
	out := make(map[string]any, len(g.groups))
	for k, bucket := range g.groups {
		out[k] = len(bucket)
	}
	return out
}
