package parser

// AutoParser detects the log format from content and delegates to the
// matching format parser.
//
// ParseFile locks the format in from the first non-blank line and never
// re-detects for the remainder of the file. Per-line re-detection would
// adapt to mixed-format files but costs throughput on large uniform ones;
// ParseLine is available for callers that want the per-line behavior.
type AutoParser struct {
	parsers map[Format]Parser
	raw     Parser
}

// NewAutoParser creates an auto-detecting parser with the built-in
// JSON, Apache, and syslog parsers registered.
func NewAutoParser() *AutoParser {
	return &AutoParser{
		parsers: map[Format]Parser{
			FormatJSON:   NewJSONParser(),
			FormatApache: NewApacheParser(),
			FormatSyslog: NewSyslogParser(),
		},
		raw: NewRawParser(),
	}
}

func (p *AutoParser) Name() string {
	return "auto"
}

// ParseLine detects the format of this single line and parses it.
func (p *AutoParser) ParseLine(line string) (Record, bool) {
	return p.parserFor(Detect(line)).ParseLine(line)
}

// ParseFile stream-parses a file, detecting the format from the first
// non-blank line. An empty (or all-blank) file yields an empty stream
// without ever selecting a parser.
func (p *AutoParser) ParseFile(path string) (*Stream, error) {
	return newStream(path, nil, func(sample string) lineFunc {
		return p.parserFor(Detect(sample)).ParseLine
	})
}

// parserFor returns the parser registered for the format tag, falling back
// to the raw pass-through parser.
func (p *AutoParser) parserFor(f Format) Parser {
	if parser, ok := p.parsers[f]; ok {
		return parser
	}
	return p.raw
}
