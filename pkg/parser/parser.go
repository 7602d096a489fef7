package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Parser converts log lines of one format into Records.
// Implementations must be safe for sequential use (not concurrent).
type Parser interface {
	// Name returns the format name (json, apache, syslog, raw).
	Name() string

	// ParseLine parses a single line. The second return is false when the
	// line should be skipped. ParseLine never fails; malformed input is
	// either skipped or passed through, depending on the format.
	ParseLine(line string) (Record, bool)

	// ParseFile opens path and returns a stream of parsed records.
	ParseFile(path string) (*Stream, error)
}

// lineFunc is the per-line parse step a Stream delegates to.
type lineFunc func(line string) (Record, bool)

// Stream is a pull iterator over parsed records. It is finite, single-pass,
// and holds O(1) memory relative to file size. Not restartable: reopen the
// file to iterate again.
type Stream struct {
	source  string
	closer  io.Closer
	scanner *bufio.Scanner

	// parse handles each line once a format is selected. In auto-detect
	// streams it stays nil until the first non-blank line, when lockIn
	// chooses the parser for the remainder of the file.
	parse  lineFunc
	lockIn func(sample string) lineFunc
}

func newStream(path string, parse lineFunc, lockIn func(string) lineFunc) (*Stream, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return &Stream{
		source:  path,
		closer:  rc,
		scanner: scanner,
		parse:   parse,
		lockIn:  lockIn,
	}, nil
}

// Next returns the next parsed record, or io.EOF when the file is exhausted.
// Blank lines and skipped lines are consumed silently.
func (s *Stream) Next(ctx context.Context) (Record, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", s.source, err)
			}
			return nil, io.EOF
		}

		// Lenient decoding: invalid byte sequences are replaced, never fatal.
		line := strings.TrimSpace(strings.ToValidUTF8(s.scanner.Text(), "�"))
		if line == "" {
			continue
		}

		if s.parse == nil {
			s.parse = s.lockIn(line)
		}

		if rec, ok := s.parse(line); ok {
			return rec, nil
		}
	}
}

// Collect drains the stream into a slice.
func (s *Stream) Collect(ctx context.Context) ([]Record, error) {
	var records []Record
	for {
		rec, err := s.Next(ctx)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Close releases the underlying file.
func (s *Stream) Close() error {
	return s.closer.Close()
}
