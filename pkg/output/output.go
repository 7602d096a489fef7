// Package output renders parsed records for the terminal or for piping
// into other tools.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/logpilot/logpilot/pkg/parser"
)

// Formatter writes records to w in a particular representation.
type Formatter interface {
	Name() string
	Format(w io.Writer, records []parser.Record) error
}

// Names lists the supported formatter names.
func Names() []string {
	return []string{"text", "json", "csv"}
}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}
