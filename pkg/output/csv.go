package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/logpilot/logpilot/pkg/parser"
)

// CSVFormatter writes records as CSV. The header is the sorted union of
// keys across all records; missing values render as empty cells.
type CSVFormatter struct{}

// Name returns "csv".
func (f *CSVFormatter) Name() string { return "csv" }

// Format writes a header row followed by one row per record.
func (f *CSVFormatter) Format(w io.Writer, records []parser.Record) error {
	if len(records) == 0 {
		return nil
	}

	seen := map[string]bool{}
	var header []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, k := range header {
			if v, ok := rec[k]; ok {
				row[i] = fmt.Sprint(v)
			} else {
				row[i] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv output: %w", err)
	}
	return nil
}
