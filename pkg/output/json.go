package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/logpilot/logpilot/pkg/parser"
)

// JSONFormatter writes newline-delimited JSON, one object per record.
type JSONFormatter struct{}

// Name returns "json".
func (f *JSONFormatter) Name() string { return "json" }

// Format writes each record as a compact JSON object on its own line.
func (f *JSONFormatter) Format(w io.Writer, records []parser.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing json output: %w", err)
		}
	}
	return nil
}
