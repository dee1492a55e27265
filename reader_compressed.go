// reader_compressed.go - Database sources: memory-mapped files and xz images
package litereader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/wilhasse/go-litereader/internal/logging"
	"github.com/wilhasse/go-litereader/internal/mmap"
)

// Source is a random-access database image.
type Source interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

// memSource holds a fully decompressed image.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

// Open opens the database image at path. Files ending in .xz are decompressed
// into memory; anything else is memory-mapped read-only.
func Open(path string) (Source, error) {
	if strings.HasSuffix(path, ".xz") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		src, err := OpenXZ(f)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		logging.FileOpened(path, "xz", src.Size())
		return src, nil
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	logging.FileOpened(path, "mmap", m.Size())
	return m, nil
}

// OpenXZ decompresses an xz stream into an in-memory Source.
func OpenXZ(r io.Reader) (Source, error) {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}
	data, err := io.ReadAll(xzr)
	if err != nil {
		return nil, fmt.Errorf("xz decompress: %w", err)
	}
	return memSource{bytes.NewReader(data)}, nil
}
