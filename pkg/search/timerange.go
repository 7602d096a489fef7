package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/logpilot/logpilot/pkg/parser"
)

// timestampLayouts are tried in order when parsing record timestamps.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"02/Jan/2006:15:04:05 -0700", // Apache Combined
	"Jan _2 15:04:05",            // Syslog (no year)
	"2006-01-02",
}

// parseTimestamp tries each known layout and returns the first success.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseTime parses a timestamp in any of the supported layouts.
func ParseTime(raw string) (time.Time, error) {
	ts, ok := parseTimestamp(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
	}
	return ts, nil
}

// TimeRangeFilter keeps records whose timestamp field falls within
// [Start, End]. Either bound may be zero for an open interval. Records
// with a missing or unparseable timestamp never match.
type TimeRangeFilter struct {
	Start time.Time
	End   time.Time
	key   string
}

// TimeRangeOption configures a TimeRangeFilter.
type TimeRangeOption func(*TimeRangeFilter)

// WithTimestampKey changes the record field holding the timestamp
// (default "timestamp").
func WithTimestampKey(key string) TimeRangeOption {
	return func(f *TimeRangeFilter) {
		f.key = key
	}
}

// NewTimeRangeFilter creates a time window filter.
func NewTimeRangeFilter(start, end time.Time, opts ...TimeRangeOption) *TimeRangeFilter {
	f := &TimeRangeFilter{Start: start, End: end, key: "timestamp"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Matches reports whether the record's timestamp falls inside the window.
func (f *TimeRangeFilter) Matches(rec parser.Record) bool {
	raw, ok := rec[f.key]
	if !ok {
		return false
	}
	ts, ok := parseTimestamp(fmt.Sprint(raw))
	if !ok {
		return false
	}
	// Compare in UTC; syslog timestamps carry no zone or year.
	ts = ts.UTC()
	if !f.Start.IsZero() && ts.Before(f.Start.UTC()) {
		return false
	}
	if !f.End.IsZero() && ts.After(f.End.UTC()) {
		return false
	}
	return true
}

// Filter returns the records inside the window.
func (f *TimeRangeFilter) Filter(records []parser.Record) []parser.Record {
	var out []parser.Record
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
