package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// RFC 3164: <priority>timestamp hostname tag[pid]: message
var syslogLineRe = regexp.MustCompile(
	`^(?:<(?P<priority>\d+)>)?` +
		`(?P<timestamp>\w{3}\s+\d+\s+\d{2}:\d{2}:\d{2})\s+` +
		`(?P<hostname>\S+)\s+` +
		`(?P<tag>[^:\[]+)(?:\[(?P<pid>\d+)\])?:\s*` +
		`(?P<message>.*)$`)

// severityNames maps priority mod 8 to the syslog severity keyword.
var severityNames = [8]string{
	"EMERG", "ALERT", "CRIT", "ERROR", "WARN", "NOTICE", "INFO", "DEBUG",
}

// SyslogParser parses RFC 3164 syslog lines. Unlike the JSON and Apache
// parsers, lines that do not match the grammar degrade to a raw
// pass-through record instead of being dropped.
type SyslogParser struct{}

// NewSyslogParser creates an RFC 3164 syslog parser.
func NewSyslogParser() *SyslogParser {
	return &SyslogParser{}
}

func (p *SyslogParser) Name() string {
	return "syslog"
}

// ParseLine extracts timestamp, hostname, tag, pid, and message.
// The level field is derived from priority mod 8, defaulting to INFO when
// no <priority> prefix is present.
func (p *SyslogParser) ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	m := syslogLineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{"message": line, "raw": true}, true
	}
	groups := make(map[string]string, len(m))
	for i, name := range syslogLineRe.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	rec := Record{
		"timestamp": groups["timestamp"],
		"hostname":  groups["hostname"],
		"tag":       strings.TrimSpace(groups["tag"]),
		"message":   groups["message"],
	}
	if groups["pid"] != "" {
		rec["pid"] = groups["pid"]
	}

	level := "INFO"
	if groups["priority"] != "" {
		pri, err := strconv.Atoi(groups["priority"])
		if err == nil {
			level = severityNames[pri%8]
			rec["priority"] = int64(pri)
		}
	}
	rec["level"] = level
	return rec, true
}

// ParseFile stream-parses a syslog file.
func (p *SyslogParser) ParseFile(path string) (*Stream, error) {
	return newStream(path, p.ParseLine, nil)
}
