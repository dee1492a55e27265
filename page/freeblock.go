// freeblock.go - Freeblock chain inside a b-tree page
package page

import (
	"errors"
	"fmt"

	"github.com/wilhasse/go-litereader/format"
)

// ErrFreeblockChain is returned for a chain that loops or leaves the page.
var ErrFreeblockChain = errors.New("corrupt freeblock chain")

// 4-byte freeblock header: next freeblock offset, then size including the header
type Freeblock struct {
	Offset uint16 // relative to the page start
	Next   uint16 // 0 on the last freeblock
	Size   uint16
}

// ParseFreeblocks walks the chain starting at first within page, which must
// begin at the page start. A nil first yields no freeblocks.
func ParseFreeblocks(page []byte, first *uint16) ([]Freeblock, error) {
	if first == nil {
		return nil, nil
	}
	var out []Freeblock
	off := int(*first)
	for off != 0 {
		if off+format.FreeblockHeaderSize > len(page) {
			return out, fmt.Errorf("%w: offset %d beyond page of %d bytes", ErrFreeblockChain, off, len(page))
		}
		next, _ := format.Be16(page, off)
		size, _ := format.Be16(page, off+2)
		if off+int(size) > len(page) {
			return out, fmt.Errorf("%w: block at %d of size %d overruns page", ErrFreeblockChain, off, size)
		}
		out = append(out, Freeblock{Offset: uint16(off), Next: next, Size: size})
		// freeblocks are kept in ascending order, so a step backwards is a loop
		if next != 0 && int(next) <= off {
			return out, fmt.Errorf("%w: next %d not after %d", ErrFreeblockChain, next, off)
		}
		off = int(next)
	}
	return out, nil
}

// Freeblocks walks the freeblock chain of pg inside buffer p.
func (pg *BTreePage) Freeblocks(p []byte, pageSize int) ([]Freeblock, error) {
	if pg.IsNull() {
		return nil, nil
	}
	end := min(pg.Offset+pageSize, len(p))
	return ParseFreeblocks(p[pg.Offset:end], pg.Header.Common().FreeblockOffset)
}
