package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// isCompressed reports whether path names a compressed log file.
func isCompressed(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".zst":
		return true
	}
	return false
}

// openReader opens path for reading, transparently decompressing
// gzip (.gz) and zstandard (.zst) inputs.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		return &decompressedReader{
			Reader: zr,
			close:  func() error { zr.Close(); return f.Close() },
		}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		return &decompressedReader{
			Reader: zr,
			close:  func() error { zr.Close(); return f.Close() },
		}, nil
	default:
		return f, nil
	}
}

// decompressedReader pairs a decompressing reader with the cleanup of both
// the decoder and the underlying file.
type decompressedReader struct {
	io.Reader
	close func() error
}

func (d *decompressedReader) Close() error {
	return d.close()
}
