package record

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/wilhasse/go-litereader/format"
	"github.com/wilhasse/go-litereader/page"
)

// buildPage writes a b-tree header with the given cells placed at their offsets.
func buildPage(size int, pt format.PageType, right uint32, cells map[uint16][]byte, order ...uint16) []byte {
	p := make([]byte, size)
	p[0] = byte(pt)
	binary.BigEndian.PutUint16(p[3:], uint16(len(order)))
	content := uint16(size - 1)
	for _, off := range order {
		content = min(content, off)
	}
	binary.BigEndian.PutUint16(p[5:], content)
	at := format.PageHeaderSizeLeaf
	if pt.IsInterior() {
		binary.BigEndian.PutUint32(p[8:], right)
		at = format.PageHeaderSizeInterior
	}
	for _, off := range order {
		binary.BigEndian.PutUint16(p[at:], off)
		at += 2
		copy(p[off:], cells[off])
	}
	return p
}

func TestWalkCellsLeafTable(t *testing.T) {
	cells := map[uint16][]byte{
		900: {0x05, 0x81, 0x3e, 'h', 'e', 'l', 'l', 'o'},
		950: {0x01, 0x07, 'x'},
	}
	p := buildPage(1024, format.PageTypeLeafTable, 0, cells, 950, 900)
	pg, err := page.ParseBTreePage(p, 0, false)
	if err != nil {
		t.Fatalf("ParseBTreePage() error = %v", err)
	}

	got, err := WalkCells(p, pg, 1024)
	if err != nil {
		t.Fatalf("WalkCells() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cells, want 2", len(got))
	}
	// pointer order, not offset order
	if ids := RowIDs(got); ids[0] != 7 || ids[1] != 190 {
		t.Errorf("RowIDs() = %v, want [7 190]", ids)
	}
	c := got[1]
	if c.Offset != 900 || *c.PayloadSize != 5 || c.PrefixSize != 3 || c.LeftChild != nil {
		t.Errorf("cell = %+v", c)
	}
	if c.HasOverflow() || c.Size() != 8 {
		t.Errorf("HasOverflow() = %v, Size() = %d", c.HasOverflow(), c.Size())
	}
}

func TestParseCellVariants(t *testing.T) {
	tests := []struct {
		name    string
		pt      format.PageType
		data    []byte
		child   uint32
		payload int64 // -1 when absent
		rowid   int64 // -1 when absent
		prefix  int
	}{
		{"interior table", format.PageTypeInteriorTable, []byte{0, 0, 0, 7, 0x81, 0x3e}, 7, -1, 190, 6},
		{"leaf index", format.PageTypeLeafIndex, []byte{0x02, 'a', 'b'}, 0, 2, -1, 1},
		{"interior index", format.PageTypeInteriorIndex, []byte{0, 0, 0, 9, 0x03, 'a', 'b', 'c'}, 9, 3, -1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := make([]byte, 512)
			copy(p[100:], tt.data)
			c, err := ParseCell(p, 100, tt.pt, 512)
			if err != nil {
				t.Fatalf("ParseCell() error = %v", err)
			}
			if c.PrefixSize != tt.prefix {
				t.Errorf("PrefixSize = %d, want %d", c.PrefixSize, tt.prefix)
			}
			if tt.pt.IsInterior() != (c.LeftChild != nil) || (c.LeftChild != nil && *c.LeftChild != tt.child) {
				t.Errorf("LeftChild = %v, want %d", c.LeftChild, tt.child)
			}
			if (tt.payload >= 0) != (c.PayloadSize != nil) || (c.PayloadSize != nil && int64(*c.PayloadSize) != tt.payload) {
				t.Errorf("PayloadSize = %v, want %d", c.PayloadSize, tt.payload)
			}
			if (tt.rowid >= 0) != (c.RowID != nil) || (c.RowID != nil && *c.RowID != tt.rowid) {
				t.Errorf("RowID = %v, want %d", c.RowID, tt.rowid)
			}
		})
	}
}

func TestParseCellOverflow(t *testing.T) {
	p := make([]byte, 4096)
	// payload 5000 (0xa7 0x08), rowid 2
	copy(p[2000:], []byte{0xa7, 0x08, 0x02})
	binary.BigEndian.PutUint32(p[2000+3+908:], 55)

	c, err := ParseCell(p, 2000, format.PageTypeLeafTable, 4096)
	if err != nil {
		t.Fatalf("ParseCell() error = %v", err)
	}
	if *c.PayloadSize != 5000 || c.LocalPayload != 908 || !c.HasOverflow() {
		t.Errorf("payload %d local %d overflow %v", *c.PayloadSize, c.LocalPayload, c.HasOverflow())
	}
	if c.OverflowPage != 55 || c.Size() != 3+908+4 {
		t.Errorf("OverflowPage = %d, Size() = %d", c.OverflowPage, c.Size())
	}
}

func TestLocalPayload(t *testing.T) {
	tests := []struct {
		size      uint64
		usable    uint32
		tableLeaf bool
		want      uint64
	}{
		{5, 1024, true, 5},
		{989, 1024, true, 989},
		{2000, 1024, true, 980},
		{230, 1024, false, 230},
		{500, 1024, false, 103},
		{5000, 4096, true, 908},
	}
	for _, tt := range tests {
		if got := LocalPayload(tt.size, tt.usable, tt.tableLeaf); got != tt.want {
			t.Errorf("LocalPayload(%d, %d, %v) = %d, want %d", tt.size, tt.usable, tt.tableLeaf, got, tt.want)
		}
	}
}

func TestParseCellIncomplete(t *testing.T) {
	p := make([]byte, 64)
	p[63] = 0x81 // varint runs off the end
	_, err := ParseCell(p, 63, format.PageTypeLeafTable, 64)
	if !errors.Is(err, format.ErrIncomplete) {
		t.Errorf("error = %v, want ErrIncomplete", err)
	}

	if _, err := ParseCell(p, 62, format.PageTypeInteriorIndex, 64); !errors.Is(err, format.ErrIncomplete) {
		t.Errorf("short child pointer error = %v", err)
	}
}

func TestParseCellNullPage(t *testing.T) {
	if _, err := ParseCell(make([]byte, 16), 0, format.PageTypeNull, 16); err == nil {
		t.Error("ParseCell() on a null page type succeeded")
	}
}

func TestWalkCellsInterior(t *testing.T) {
	cells := map[uint16][]byte{
		400: {0, 0, 0, 3, 0x0a},
		420: {0, 0, 0, 4, 0x14},
	}
	p := buildPage(512, format.PageTypeInteriorTable, 5, cells, 400, 420)
	pg, err := page.ParseBTreePage(p, 0, false)
	if err != nil {
		t.Fatalf("ParseBTreePage() error = %v", err)
	}
	got, err := WalkCells(p, pg, 512)
	if err != nil {
		t.Fatalf("WalkCells() error = %v", err)
	}
	children := ChildPages(got)
	if len(children) != 2 || children[0] != 3 || children[1] != 4 {
		t.Errorf("ChildPages() = %v", children)
	}
	if ids := RowIDs(got); len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("RowIDs() = %v", ids)
	}
}
