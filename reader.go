package litereader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wilhasse/go-litereader/format"
	"github.com/wilhasse/go-litereader/page"
)

// PageReader reads pages of a database image by 1-based page number.
type PageReader struct {
	r    io.ReaderAt
	size int64 // -1 when the source cannot report it
	hdr  *page.FileHeader
}

type sizer interface{ Size() int64 }

type statter interface {
	Stat() (os.FileInfo, error)
}

func NewPageReader(r io.ReaderAt) *PageReader {
	pr := &PageReader{r: r, size: -1}
	switch s := r.(type) {
	case sizer:
		pr.size = s.Size()
	case statter:
		if fi, err := s.Stat(); err == nil {
			pr.size = fi.Size()
		}
	}
	return pr
}

// Size is the image size in bytes, or -1 if unknown.
func (pr *PageReader) Size() int64 { return pr.size }

// ReadFileHeader reads and decodes the 100-byte file header. The result is
// cached for later page reads.
func (pr *PageReader) ReadFileHeader() (page.FileHeader, error) {
	if pr.hdr != nil {
		return *pr.hdr, nil
	}
	buf := make([]byte, format.FileHeaderSize)
	n, err := pr.r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return page.FileHeader{}, fmt.Errorf("read file header: %w", err)
	}
	// a short file decodes as far as it goes, so the caller sees why it failed
	h, err := page.ParseFileHeader(buf[:n])
	if err != nil {
		return page.FileHeader{}, fmt.Errorf("file header: %w", err)
	}
	pr.hdr = &h
	return h, nil
}

// PageCount is the number of pages to visit. The in-header size is trusted only
// when it is nonzero and matches the change counter, otherwise it is derived
// from the image size.
func (pr *PageReader) PageCount() (uint32, error) {
	h, err := pr.ReadFileHeader()
	if err != nil {
		return 0, err
	}
	if h.DatabaseSize != 0 && h.VersionValidFor == h.FileChangeCounter {
		return h.DatabaseSize, nil
	}
	if pr.size < 0 {
		return h.DatabaseSize, nil
	}
	return uint32(pr.size / int64(h.PageSize)), nil
}

// ReadPageData returns the raw bytes of 1-based page n.
func (pr *PageReader) ReadPageData(n uint32) ([]byte, error) {
	if n == 0 {
		return nil, fmt.Errorf("read page 0: pages are numbered from 1")
	}
	h, err := pr.ReadFileHeader()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, h.PageSize)
	got, err := pr.r.ReadAt(buf, h.PageOffset(n))
	if err != nil && !(errors.Is(err, io.EOF) && got == len(buf)) {
		return nil, fmt.Errorf("read page %d: %w", n, err)
	}
	return buf, nil
}

// ReadPage reads page n and decodes its b-tree header. Page 1 skips the file
// header first.
func (pr *PageReader) ReadPage(n uint32) (*Page, error) {
	buf, err := pr.ReadPageData(n)
	if err != nil {
		return nil, err
	}
	h, _ := pr.ReadFileHeader()
	return NewPage(n, buf, h.UsableSize())
}
