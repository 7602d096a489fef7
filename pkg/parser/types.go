// Package parser provides log format auto-detection and streaming parsers
// for NDJSON, Apache access log, RFC 3164 syslog, and unstructured text.
package parser

import "strconv"

// Record is a single parsed log line, normalized to field name → value.
// Values are string, int64, float64, bool, or nested []any / map[string]any
// for structured formats. A Record is owned by the consumer that receives
// it and is never mutated by the parser after creation.
type Record map[string]any

// String returns the named field as a string.
// The second return is false when the field is absent or not a string.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the named field coerced to float64.
// Numeric types and numeric strings coerce; everything else reports false.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the named field coerced to int64.
func (r Record) Int(key string) (int64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}
