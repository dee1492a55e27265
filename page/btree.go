// btree.go - B-tree page header and cell pointer array parsing
package page

import (
	"github.com/wilhasse/go-litereader/format"
)

// BTreePageHeader is one of NullPageHeader, LeafPageHeader or InteriorPageHeader.
// Only the interior variant carries a right-most pointer.
type BTreePageHeader interface {
	Type() format.PageType
	// Size is the number of header bytes consumed before the cell pointer array.
	Size() int
	Common() HeaderFields
	isBTreePageHeader()
}

// HeaderFields are the fields shared by leaf and interior headers.
type HeaderFields struct {
	PageType            format.PageType
	FreeblockOffset     *uint16 // nil when the page has no freeblocks
	CellCount           uint16
	CellContentOffset   uint32 // stored 0 means 65536
	FragmentedFreeBytes uint8
}

// NullPageHeader is the two zero bytes of an unallocated page.
type NullPageHeader struct{}

func (NullPageHeader) Type() format.PageType { return format.PageTypeNull }
func (NullPageHeader) Size() int             { return 2 }
func (NullPageHeader) Common() HeaderFields  { return HeaderFields{PageType: format.PageTypeNull} }
func (NullPageHeader) isBTreePageHeader()    {}

// LeafPageHeader is the 8-byte header of leaf pages. A zero page-type byte that
// is not followed by a second zero byte also decodes to this variant.
type LeafPageHeader struct {
	HeaderFields
}

func (h LeafPageHeader) Type() format.PageType { return h.PageType }
func (LeafPageHeader) Size() int               { return format.PageHeaderSizeLeaf }
func (h LeafPageHeader) Common() HeaderFields  { return h.HeaderFields }
func (LeafPageHeader) isBTreePageHeader()      {}

// InteriorPageHeader is the 12-byte header of interior pages.
type InteriorPageHeader struct {
	HeaderFields
	RightMostPointer uint32
}

func (h InteriorPageHeader) Type() format.PageType { return h.PageType }
func (InteriorPageHeader) Size() int               { return format.PageHeaderSizeInterior }
func (h InteriorPageHeader) Common() HeaderFields  { return h.HeaderFields }
func (InteriorPageHeader) isBTreePageHeader()      {}

// ParseBTreePageHeader decodes the page header starting at off and returns it
// together with the offset just past it.
func ParseBTreePageHeader(p []byte, off int) (BTreePageHeader, int, error) {
	sentinel, err := format.Be16(p, off)
	if err != nil {
		return nil, off, err
	}
	if sentinel == 0 {
		return NullPageHeader{}, off + 2, nil
	}

	r := newFieldReader(p, off)
	rawType := r.u8()
	if r.err != nil {
		return nil, off, r.err
	}
	pt, err := format.ParsePageType(rawType)
	if err != nil {
		return nil, off, err
	}

	f := HeaderFields{PageType: pt}
	if fb := r.u16(); fb != 0 {
		f.FreeblockOffset = &fb
	}
	f.CellCount = r.u16()
	f.CellContentOffset = uint32(r.u16())
	if f.CellContentOffset == 0 {
		f.CellContentOffset = format.MaxCellContentOffset
	}
	f.FragmentedFreeBytes = r.u8()

	if !pt.IsInterior() {
		if r.err != nil {
			return nil, off, r.err
		}
		return LeafPageHeader{HeaderFields: f}, r.c.Offset(), nil
	}

	right := r.u32()
	if r.err != nil {
		return nil, off, r.err
	}
	return InteriorPageHeader{HeaderFields: f, RightMostPointer: right}, r.c.Offset(), nil
}

// BTreePage is a page header plus its cell pointer array in on-disk order.
type BTreePage struct {
	Offset       int // start of the page in the buffer
	HeaderOffset int // start of the b-tree header; Offset+100 on page 1
	Header       BTreePageHeader
	CellPointers []uint16 // relative to Offset
}

// ParseBTreePage decodes the page starting at off. With skipFileHeader set the
// page is page 1: the 100-byte file header is verified by magic and skipped first.
func ParseBTreePage(p []byte, off int, skipFileHeader bool) (*BTreePage, error) {
	hdrOff := off
	if skipFileHeader {
		if err := checkMagic(p, off); err != nil {
			return nil, err
		}
		hdrOff += format.FileHeaderSize
	}

	hdr, cur, err := ParseBTreePageHeader(p, hdrOff)
	if err != nil {
		return nil, err
	}
	pg := &BTreePage{Offset: off, HeaderOffset: hdrOff, Header: hdr}
	if _, null := hdr.(NullPageHeader); null {
		return pg, nil
	}

	c := format.NewCursor(p, cur)
	n := int(hdr.Common().CellCount)
	pg.CellPointers = make([]uint16, n)
	for i := 0; i < n; i++ {
		ptr, err := c.U16()
		if err != nil {
			return nil, err
		}
		pg.CellPointers[i] = ptr
	}
	return pg, nil
}

// IsNull reports whether the page is the unallocated-page sentinel.
func (pg *BTreePage) IsNull() bool {
	_, ok := pg.Header.(NullPageHeader)
	return ok
}

// CellPointerOffset is the absolute offset of the cell pointer array.
func (pg *BTreePage) CellPointerOffset() int {
	return pg.HeaderOffset + pg.Header.Size()
}

// RightMostPointer returns the right-most child page of an interior page.
func (pg *BTreePage) RightMostPointer() (uint32, bool) {
	ih, ok := pg.Header.(InteriorPageHeader)
	return ih.RightMostPointer, ok
}

// UnallocatedBytes is the gap between the end of the cell pointer array and
// the start of the cell content area, both relative to the page start.
func (pg *BTreePage) UnallocatedBytes() int {
	if pg.IsNull() {
		return 0
	}
	end := pg.CellPointerOffset() - pg.Offset + len(pg.CellPointers)*format.CellPointerSize
	gap := int(pg.Header.Common().CellContentOffset) - end
	if gap < 0 {
		return 0
	}
	return gap
}
