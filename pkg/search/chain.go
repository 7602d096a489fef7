package search

import "github.com/logpilot/logpilot/pkg/parser"

// Filter is satisfied by anything that can judge a single record.
type Filter interface {
	Matches(rec parser.Record) bool
}

// FilterChain combines filters with AND semantics. An empty chain
// matches everything.
type FilterChain struct {
	filters []Filter
}

// NewFilterChain creates an empty chain.
func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

// Add appends a filter and returns the chain for call chaining.
func (c *FilterChain) Add(f Filter) *FilterChain {
	c.filters = append(c.filters, f)
	return c
}

// Len returns the number of filters in the chain.
func (c *FilterChain) Len() int {
	return len(c.filters)
}

// Matches reports whether every filter in the chain accepts the record.
func (c *FilterChain) Matches(rec parser.Record) bool {
	for _, f := range c.filters {
		if !f.Matches(rec) {
			return false
		}
	}
	return true
}

// Apply returns the records accepted by every filter.
func (c *FilterChain) Apply(records []parser.Record) []parser.Record {
	var out []parser.Record
	for _, rec := range records {
		if c.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// AnyFilter combines filters with OR semantics. An empty AnyFilter
// matches nothing.
type AnyFilter struct {
	filters []Filter
}

// NewAnyFilter creates an OR combination of the given filters.
func NewAnyFilter(filters ...Filter) *AnyFilter {
	return &AnyFilter{filters: filters}
}

// Matches reports whether at least one filter accepts the record.
func (a *AnyFilter) Matches(rec parser.Record) bool {
	for _, f := range a.filters {
		if f.Matches(rec) {
			return true
		}
	}
	return false
}
