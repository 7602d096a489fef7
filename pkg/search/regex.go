// Package search provides regex and time-range filtering over parsed
// records, composable through predicate chains.
package search

import (
	"fmt"
	"regexp"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Predicate decides whether a record passes a filter.
type Predicate func(parser.Record) bool

// RegexSearch matches records whose field values match a pattern.
// Matching is case-insensitive unless the pattern sets its own flags.
type RegexSearch struct {
	re     *regexp.Regexp
	fields []string
}

// RegexOption configures a RegexSearch.
type RegexOption func(*RegexSearch)

// WithFields restricts matching to the named fields instead of testing
// every value in the record.
func WithFields(fields ...string) RegexOption {
	return func(s *RegexSearch) {
		s.fields = fields
	}
}

// NewRegexSearch compiles the pattern with case-insensitive matching.
func NewRegexSearch(pattern string, opts ...RegexOption) (*RegexSearch, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	s := &RegexSearch{re: re}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Matches reports whether any relevant field value matches the pattern.
func (s *RegexSearch) Matches(rec parser.Record) bool {
	if len(s.fields) > 0 {
		for _, k := range s.fields {
			if v, ok := rec[k]; ok && s.re.MatchString(fmt.Sprint(v)) {
				return true
			}
		}
		return false
	}
	for _, v := range rec {
		if s.re.MatchString(fmt.Sprint(v)) {
			return true
		}
	}
	return false
}

// Filter returns the subset of records that match.
func (s *RegexSearch) Filter(records []parser.Record) []parser.Record {
	var out []parser.Record
	for _, rec := range records {
		if s.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
