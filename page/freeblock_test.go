package page

import (
	"encoding/binary"
	"errors"
	"testing"
)

func putFreeblock(page []byte, off, next, size uint16) {
	binary.BigEndian.PutUint16(page[off:], next)
	binary.BigEndian.PutUint16(page[off+2:], size)
}

func TestParseFreeblocks(t *testing.T) {
	page := make([]byte, 512)
	copy(page, btreeHeader(0x0d, 200, 150, 0, 0))
	putFreeblock(page, 200, 300, 16)
	putFreeblock(page, 300, 0, 8)

	pg, err := ParseBTreePage(page, 0, false)
	if err != nil {
		t.Fatalf("ParseBTreePage() error = %v", err)
	}
	blocks, err := pg.Freeblocks(page, len(page))
	if err != nil {
		t.Fatalf("Freeblocks() error = %v", err)
	}
	want := []Freeblock{{200, 300, 16}, {300, 0, 8}}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestParseFreeblocksNone(t *testing.T) {
	blocks, err := ParseFreeblocks(make([]byte, 512), nil)
	if err != nil || blocks != nil {
		t.Errorf("ParseFreeblocks(nil) = %v, %v", blocks, err)
	}
}

func TestParseFreeblocksCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		setup func(page []byte) uint16
	}{
		{"loop", func(page []byte) uint16 {
			putFreeblock(page, 100, 200, 4)
			putFreeblock(page, 200, 100, 4)
			return 100
		}},
		{"beyond page", func(page []byte) uint16 { return 510 }},
		{"size overruns", func(page []byte) uint16 {
			putFreeblock(page, 500, 0, 64)
			return 500
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := make([]byte, 512)
			first := tt.setup(page)
			if _, err := ParseFreeblocks(page, &first); !errors.Is(err, ErrFreeblockChain) {
				t.Errorf("error = %v, want ErrFreeblockChain", err)
			}
		})
	}
}
