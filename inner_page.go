package litereader

import (
	"fmt"

	"github.com/wilhasse/go-litereader/format"
	"github.com/wilhasse/go-litereader/page"
	"github.com/wilhasse/go-litereader/record"
)

// Page is one database page with its decoded b-tree header.
type Page struct {
	PageNo uint32
	Data   []byte // full page bytes, page 1 includes the file header
	Usable uint32
	BTree  *page.BTreePage
}

func NewPage(pageNo uint32, data []byte, usable uint32) (*Page, error) {
	pg, err := page.ParseBTreePage(data, 0, pageNo == 1)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNo, err)
	}
	return &Page{PageNo: pageNo, Data: data, Usable: usable, BTree: pg}, nil
}

func (p *Page) PageType() format.PageType { return p.BTree.Header.Type() }

func (p *Page) IsNull() bool { return p.BTree.IsNull() }

// Cells decodes the prefix of every cell on the page.
func (p *Page) Cells() ([]record.Cell, error) {
	return record.WalkCells(p.Data, p.BTree, p.Usable)
}

// Freeblocks walks the page's freeblock chain.
func (p *Page) Freeblocks() ([]page.Freeblock, error) {
	return p.BTree.Freeblocks(p.Data, int(p.Usable))
}

// Digest is the BLAKE3 fingerprint of the raw page bytes.
func (p *Page) Digest() string { return PageDigest(p.Data) }
