// cell.go - B-tree cell prefix parsing (child pointer, payload size, rowid)
package record

import (
	"fmt"

	"github.com/wilhasse/go-litereader/format"
)

// Cell is the decoded prefix of one b-tree cell. Which fields are set depends
// on the page type:
//
//	leaf table      PayloadSize, RowID
//	interior table  LeftChild, RowID
//	leaf index      PayloadSize
//	interior index  LeftChild, PayloadSize
//
// Payload bytes are located, not deserialized.
type Cell struct {
	Offset      uint16 // cell pointer, relative to the page start
	PageType    format.PageType
	LeftChild   *uint32
	PayloadSize *uint64
	RowID       *int64
	PrefixSize  int // bytes of child pointer and varints before the payload

	// LocalPayload is how much of the payload is stored on this page. When it
	// is smaller than PayloadSize the rest lives on the OverflowPage chain.
	LocalPayload uint64
	OverflowPage uint32
}

// HasOverflow reports whether the payload spills onto overflow pages.
func (c Cell) HasOverflow() bool {
	return c.PayloadSize != nil && c.LocalPayload < *c.PayloadSize
}

// Size is the number of bytes the cell occupies in the content area.
func (c Cell) Size() int {
	n := c.PrefixSize + int(c.LocalPayload)
	if c.HasOverflow() {
		n += 4
	}
	return n
}

// ParseCell decodes the cell at ptr. page must start at the page start so that
// ptr can be used as-is, including on page 1. usable is the usable page size
// used to decide how much payload is stored locally.
func ParseCell(page []byte, ptr uint16, pt format.PageType, usable uint32) (Cell, error) {
	c := Cell{Offset: ptr, PageType: pt}
	cur := format.NewCursor(page, int(ptr))

	if pt.IsInterior() {
		child, err := cur.U32()
		if err != nil {
			return Cell{}, fmt.Errorf("cell at %d: left child: %w", ptr, err)
		}
		c.LeftChild = &child
	}

	switch pt {
	case format.PageTypeLeafTable, format.PageTypeLeafIndex, format.PageTypeInteriorIndex:
		size, err := cur.Varint()
		if err != nil {
			return Cell{}, fmt.Errorf("cell at %d: payload size: %w", ptr, err)
		}
		c.PayloadSize = &size
	case format.PageTypeInteriorTable:
	default:
		return Cell{}, fmt.Errorf("cell at %d: page type %s has no cells", ptr, pt)
	}

	if pt.IsTable() {
		v, err := cur.Varint()
		if err != nil {
			return Cell{}, fmt.Errorf("cell at %d: rowid: %w", ptr, err)
		}
		rowid := int64(v)
		c.RowID = &rowid
	}
	c.PrefixSize = cur.Offset() - int(ptr)

	if c.PayloadSize == nil {
		return c, nil
	}
	c.LocalPayload = LocalPayload(*c.PayloadSize, usable, pt.IsTable() && pt.IsLeaf())
	if c.HasOverflow() {
		ov, err := format.Be32(page, cur.Offset()+int(c.LocalPayload))
		if err != nil {
			return Cell{}, fmt.Errorf("cell at %d: overflow page: %w", ptr, err)
		}
		c.OverflowPage = ov
	}
	return c, nil
}

// LocalPayload returns how many of size payload bytes are kept in the cell for
// a page with the given usable size. Table leaves and index cells use
// different upper bounds.
func LocalPayload(size uint64, usable uint32, tableLeaf bool) uint64 {
	u := uint64(usable)
	if u < 480 {
		// below the format minimum; treat everything as local
		return size
	}
	maxLocal := u - 35
	if !tableLeaf {
		maxLocal = (u-12)*64/255 - 23
	}
	if size <= maxLocal {
		return size
	}
	minLocal := (u-12)*32/255 - 23
	k := minLocal + (size-minLocal)%(u-4)
	if k <= maxLocal {
		return k
	}
	return minLocal
}
