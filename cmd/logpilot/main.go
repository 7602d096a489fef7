// LogPilot - Log Parsing and Analysis Tool
//
// LogPilot parses common log formats (NDJSON, Apache, syslog, raw text)
// and runs searches, statistics, anomaly detection, and alert rules
// over them.
package main

import (
	"os"

	"github.com/logpilot/logpilot/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
