// iter.go - Cell iteration over a decoded b-tree page
package record

import (
	"fmt"

	"github.com/wilhasse/go-litereader/page"
)

// WalkCells decodes every cell of pg in cell pointer order. p is the buffer pg
// was parsed from and usable the usable page size. Decoding stops at the first
// bad cell and returns the cells read so far.
func WalkCells(p []byte, pg *page.BTreePage, usable uint32) ([]Cell, error) {
	if pg.IsNull() || len(pg.CellPointers) == 0 {
		return nil, nil
	}
	if pg.Offset > len(p) {
		return nil, fmt.Errorf("page offset %d beyond buffer of %d bytes", pg.Offset, len(p))
	}
	buf := p[pg.Offset:]
	if end := int(usable); end > 0 && end < len(buf) {
		buf = buf[:end]
	}

	pt := pg.Header.Type()
	out := make([]Cell, 0, len(pg.CellPointers))
	for i, ptr := range pg.CellPointers {
		c, err := ParseCell(buf, ptr, pt, usable)
		if err != nil {
			return out, fmt.Errorf("cell %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// RowIDs returns the rowids of table cells in order, skipping index cells.
func RowIDs(cells []Cell) []int64 {
	var ids []int64
	for _, c := range cells {
		if c.RowID != nil {
			ids = append(ids, *c.RowID)
		}
	}
	return ids
}

// ChildPages returns the left child pointers of interior cells in order.
func ChildPages(cells []Cell) []uint32 {
	var out []uint32
	for _, c := range cells {
		if c.LeftChild != nil {
			out = append(out, *c.LeftChild)
		}
	}
	return out
}
