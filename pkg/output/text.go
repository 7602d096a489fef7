package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logpilot/logpilot/pkg/parser"
)

var (
	timestampKeys = []string{"timestamp", "time", "@timestamp"}
	levelKeys     = []string{"level", "severity", "lvl"}
)

// TextFormatter renders one human-readable line per record, pulling
// well-known fields into fixed positions.
type TextFormatter struct{}

// Name returns "text".
func (f *TextFormatter) Name() string { return "text" }

// Format writes each record on its own line.
func (f *TextFormatter) Format(w io.Writer, records []parser.Record) error {
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, formatLine(rec)); err != nil {
			return fmt.Errorf("writing text output: %w", err)
		}
	}
	return nil
}

func firstOf(rec parser.Record, keys []string) (string, string) {
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			return k, fmt.Sprint(v)
		}
	}
	return "", ""
}

func formatLine(rec parser.Record) string {
	var parts []string
	used := map[string]bool{}

	if k, ts := firstOf(rec, timestampKeys); k != "" {
		parts = append(parts, ts)
		used[k] = true
	}
	if k, lvl := firstOf(rec, levelKeys); k != "" {
		parts = append(parts, strings.ToUpper(lvl))
		used[k] = true
	}

	// Apache-shaped records render as "METHOD /path status".
	if method, ok := rec.String("method"); ok && method != "" {
		if path, ok := rec.String("path"); ok && path != "" {
			req := method + " " + path
			used["method"], used["path"] = true, true
			if status, ok := rec["status"]; ok {
				req += " " + fmt.Sprint(status)
				used["status"] = true
			}
			parts = append(parts, req)
		}
	}

	// Syslog-shaped records render the tag in brackets.
	if tag, ok := rec.String("tag"); ok && tag != "" {
		parts = append(parts, "["+tag+"]")
		used["tag"] = true
	}
	if msg, ok := rec["message"]; ok {
		parts = append(parts, fmt.Sprint(msg))
		used["message"] = true
	}

	// Remaining fields trail as key=value, sorted for stable output.
	var rest []string
	for k, v := range rec {
		if used[k] || k == "raw" {
			continue
		}
		rest = append(rest, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(rest)
	parts = append(parts, rest...)

	return strings.Join(parts, " ")
}
