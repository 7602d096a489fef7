package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Chunk is a contiguous byte range of a file assigned to one worker.
// Start is inclusive, End exclusive.
type Chunk struct {
	Path  string
	Start int64
	End   int64
}

// SplitFile divides a file into up to n contiguous chunks. The chunks
// partition [0, size) with no gap or overlap: each chunk is floor(size/n)
// bytes (minimum 1) except the last, which extends to the exact file size.
// An empty file produces no chunks.
func SplitFile(path string, n int) ([]Chunk, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	chunkSize := size / int64(n)
	if chunkSize < 1 {
		chunkSize = 1
	}

	var chunks []Chunk
	var start int64
	for i := 0; i < n; i++ {
		end := start + chunkSize
		if i == n-1 || end > size {
			end = size
		}
		chunks = append(chunks, Chunk{Path: path, Start: start, End: end})
		start = end
		if start >= size {
			break
		}
	}
	return chunks, nil
}

// parseChunk parses the whole lines of one byte range. If the chunk starts
// mid-line, the partial line is discarded; it belongs to the worker whose
// chunk contains its first byte. The line that pushes the read position
// past End is still fully consumed, so no line is lost at a boundary.
//
// Each chunk runs its own format detection and lock-in. A file whose
// format changes across byte ranges can therefore parse differently than
// a single-threaded pass; see ParseFileParallel.
func parseChunk(c Chunk) ([]Record, error) {
	f, err := os.Open(c.Path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pos := c.Start
	if c.Start > 0 {
		// Peek the byte before Start to learn whether we begin on a
		// line boundary.
		if _, err := f.Seek(c.Start-1, io.SeekStart); err != nil {
			return nil, err
		}
	}
	r := bufio.NewReaderSize(f, 64*1024)
	if c.Start > 0 {
		prev, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if prev != '\n' {
			skipped, err := r.ReadString('\n')
			pos += int64(len(skipped))
			if err == io.EOF {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
		}
	}

	auto := NewAutoParser()
	var parse lineFunc
	var records []Record

	for pos < c.End {
		raw, err := r.ReadString('\n')
		if len(raw) == 0 {
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}
		pos += int64(len(raw))

		line := strings.TrimSpace(strings.ToValidUTF8(raw, "�"))
		if line != "" {
			if parse == nil {
				parse = auto.parserFor(Detect(line)).ParseLine
			}
			if rec, ok := parse(line); ok {
				records = append(records, rec)
			}
		}

		if err == io.EOF {
			break
		}
	}
	return records, nil
}
