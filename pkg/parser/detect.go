package parser

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// Format classifies the syntax of a log line.
type Format int

const (
	FormatRaw Format = iota
	FormatJSON
	FormatApache
	FormatSyslog
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatApache:
		return "apache"
	case FormatSyslog:
		return "syslog"
	default:
		return "raw"
	}
}

// ParseFormat converts a format name to its Format tag.
// Unknown names map to FormatRaw.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON
	case "apache":
		return FormatApache
	case "syslog":
		return FormatSyslog
	default:
		return FormatRaw
	}
}

// Apache Combined Log: three whitespace-delimited tokens then "[".
var apacheHeadRe = regexp.MustCompile(`^\S+ \S+ \S+ \[`)

// RFC 3164 timestamp head: optional <priority> then a month abbreviation.
var syslogHeadRe = regexp.MustCompile(
	`^(?:<\d+>)?(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s`)

// Detect classifies a single sample line. Deterministic and stateless;
// the first matching check wins:
//
//  1. blank          → raw
//  2. starts with {  → json
//  3. token token token [ → apache
//  4. optional <pri> + month abbreviation → syslog
//  5. otherwise      → raw
func Detect(sample string) Format {
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return FormatRaw
	}
	if strings.HasPrefix(sample, "{") {
		return FormatJSON
	}
	if apacheHeadRe.MatchString(sample) {
		return FormatApache
	}
	if syslogHeadRe.MatchString(sample) {
		return FormatSyslog
	}
	return FormatRaw
}

// DetectFile classifies a file by its first non-blank line. An empty or
// all-blank file reports FormatRaw. Compressed files are inspected after
// decompression.
func DetectFile(path string) (Format, error) {
	r, err := openReader(path)
	if err != nil {
		return FormatRaw, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return Detect(line), nil
	}
	if err := scanner.Err(); err != nil {
		return FormatRaw, fmt.Errorf("reading %s: %w", path, err)
	}
	return FormatRaw, nil
}
