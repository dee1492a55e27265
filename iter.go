// iter.go - Linear page iteration over a database image
package litereader

import (
	"context"

	"github.com/wilhasse/go-litereader/format"
	"github.com/wilhasse/go-litereader/internal/logging"
	"github.com/wilhasse/go-litereader/page"
)

// PageSummary describes one page visited by Scan. Err is set when the page
// could not be read or is not a b-tree page; the other fields are then partial.
type PageSummary struct {
	PageNo           uint32          `json:"page"`
	Type             format.PageType `json:"-"`
	TypeName         string          `json:"type"`
	CellCount        int             `json:"cells"`
	FreeblockCount   int             `json:"freeblocks"`
	UnallocatedBytes int             `json:"unallocated"`
	RightMostPointer *uint32         `json:"right_most_pointer,omitempty"`
	Digest           string          `json:"blake3,omitempty"`
	Err              error           `json:"-"`
	Error            string          `json:"error,omitempty"`
}

// ScanResult is the file header plus one summary per page, in page order.
type ScanResult struct {
	Header page.FileHeader
	Pages  []PageSummary
}

// Counts tallies pages by type name, with undecodable pages under "error".
func (r *ScanResult) Counts() map[string]int {
	out := make(map[string]int)
	for _, p := range r.Pages {
		if p.Err != nil {
			out["error"]++
			continue
		}
		out[p.TypeName]++
	}
	return out
}

// Scan visits pages 1..PageCount in file order. It does not follow the tree:
// freelist and overflow pages are visited too and show up with an error. A
// page that fails to decode does not stop the scan; ctx is checked between
// pages.
func Scan(ctx context.Context, pr *PageReader) (*ScanResult, error) {
	h, err := pr.ReadFileHeader()
	if err != nil {
		return nil, err
	}
	count, err := pr.PageCount()
	if err != nil {
		return nil, err
	}

	res := &ScanResult{Header: h, Pages: make([]PageSummary, 0, count)}
	for n := uint32(1); n <= count; n++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Pages = append(res.Pages, summarize(pr, n))
	}
	logging.DebugContext(ctx, "scan_complete", "pages", len(res.Pages))
	return res, nil
}

func summarize(pr *PageReader, n uint32) PageSummary {
	s := PageSummary{PageNo: n}
	fail := func(err error) PageSummary {
		logging.PageError(n, err)
		s.Err = err
		s.Error = err.Error()
		return s
	}

	data, err := pr.ReadPageData(n)
	if err != nil {
		return fail(err)
	}
	s.Digest = PageDigest(data)

	h, _ := pr.ReadFileHeader()
	p, err := NewPage(n, data, h.UsableSize())
	if err != nil {
		return fail(err)
	}
	s.Type = p.PageType()
	s.TypeName = s.Type.String()
	if p.IsNull() {
		return s
	}
	s.CellCount = len(p.BTree.CellPointers)
	s.UnallocatedBytes = p.BTree.UnallocatedBytes()
	if right, ok := p.BTree.RightMostPointer(); ok {
		s.RightMostPointer = &right
	}
	fbs, err := p.Freeblocks()
	if err != nil {
		return fail(err)
	}
	s.FreeblockCount = len(fbs)
	return s
}
