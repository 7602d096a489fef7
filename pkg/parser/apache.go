package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Apache Combined Log Format; the Common format matches with the optional
// referer and user-agent groups absent.
var apacheLineRe = regexp.MustCompile(
	`^(?P<host>\S+)\s+` + // client IP or hostname
		`(?P<ident>\S+)\s+` + // ident
		`(?P<user>\S+)\s+` + // authenticated user
		`\[(?P<time>[^\]]+)\]\s+` + // [timestamp]
		`"(?P<request>[^"]+)"\s+` + // "METHOD /path HTTP/x.x"
		`(?P<status>\d+)\s+` + // status code
		`(?P<bytes>\S+)` + // bytes sent, or -
		`(?:\s+"(?P<referer>[^"]*)")?` + // optional referer
		`(?:\s+"(?P<agent>[^"]*)")?`) // optional user-agent

// ApacheParser parses Apache Common and Combined access log lines.
// Non-matching lines are skipped.
type ApacheParser struct{}

// NewApacheParser creates an Apache access log parser.
func NewApacheParser() *ApacheParser {
	return &ApacheParser{}
}

func (p *ApacheParser) Name() string {
	return "apache"
}

// ParseLine extracts the request fields from one access log line.
// The level field is derived from the status code: ERROR for 5xx, else INFO.
func (p *ApacheParser) ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	m := apacheLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	groups := make(map[string]string, len(m))
	for i, name := range apacheLineRe.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	rec := Record{
		"host":      groups["host"],
		"timestamp": groups["time"],
	}

	method, path, proto := splitRequest(groups["request"])
	if method != "" {
		rec["method"] = method
	}
	if path != "" {
		rec["path"] = path
	}
	if proto != "" {
		rec["protocol"] = proto
	}

	status := 0
	if n, err := strconv.Atoi(groups["status"]); err == nil {
		status = n
		rec["status"] = int64(n)
	}

	// bytes-sent of "-" means zero; anything non-numeric also coerces to 0.
	var bytes int64
	if groups["bytes"] != "-" {
		bytes, _ = strconv.ParseInt(groups["bytes"], 10, 64)
	}
	rec["bytes"] = bytes

	if groups["referer"] != "" {
		rec["referer"] = groups["referer"]
	}
	if groups["agent"] != "" {
		rec["user_agent"] = groups["agent"]
	}

	if status >= 500 {
		rec["level"] = "ERROR"
	} else {
		rec["level"] = "INFO"
	}
	return rec, true
}

// ParseFile stream-parses an Apache access log file.
func (p *ApacheParser) ParseFile(path string) (*Stream, error) {
	return newStream(path, p.ParseLine, nil)
}

// splitRequest breaks "METHOD /path HTTP/1.1" into its three parts.
func splitRequest(request string) (method, path, proto string) {
	parts := strings.SplitN(request, " ", 3)
	if len(parts) > 0 {
		method = parts[0]
	}
	if len(parts) > 1 {
		path = parts[1]
	}
	if len(parts) > 2 {
		proto = parts[2]
	}
	return method, path, proto
}
