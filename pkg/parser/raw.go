package parser

import "strings"

// RawParser is the fallback for unstructured text: every non-blank line
// becomes a pass-through record.
type RawParser struct{}

// NewRawParser creates the pass-through parser.
func NewRawParser() *RawParser {
	return &RawParser{}
}

func (p *RawParser) Name() string {
	return "raw"
}

func (p *RawParser) ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	return Record{"message": line, "raw": true}, true
}

// ParseFile stream-parses a plain text file.
func (p *RawParser) ParseFile(path string) (*Stream, error) {
	return newStream(path, p.ParseLine, nil)
}
