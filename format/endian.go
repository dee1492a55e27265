// endian.go - Big-endian byte reading utilities
package format

import "encoding/binary"

// need reports how many bytes are missing to read n bytes at off.
func need(b []byte, off, n int) int {
	if off+n > len(b) {
		return off + n - len(b)
	}
	return 0
}

func U8(b []byte, off int) (uint8, error) {
	if off < 0 {
		return 0, ErrOutOfBounds
	}
	if m := need(b, off, 1); m > 0 {
		return 0, &IncompleteError{Needed: m}
	}
	return b[off], nil
}

func Be16(b []byte, off int) (uint16, error) {
	if off < 0 {
		return 0, ErrOutOfBounds
	}
	if m := need(b, off, 2); m > 0 {
		return 0, &IncompleteError{Needed: m}
	}
	return binary.BigEndian.Uint16(b[off : off+2]), nil
}

func Be32(b []byte, off int) (uint32, error) {
	if off < 0 {
		return 0, ErrOutOfBounds
	}
	if m := need(b, off, 4); m > 0 {
		return 0, &IncompleteError{Needed: m}
	}
	return binary.BigEndian.Uint32(b[off : off+4]), nil
}

// Cursor reads fields front to back over an immutable buffer. It never seeks backwards.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(b []byte, off int) *Cursor { return &Cursor{buf: b, off: off} }

// Offset is the absolute position of the next unread byte.
func (c *Cursor) Offset() int { return c.off }

func (c *Cursor) U8() (uint8, error) {
	v, err := U8(c.buf, c.off)
	if err != nil {
		return 0, err
	}
	c.off++
	return v, nil
}

func (c *Cursor) U16() (uint16, error) {
	v, err := Be16(c.buf, c.off)
	if err != nil {
		return 0, err
	}
	c.off += 2
	return v, nil
}

func (c *Cursor) U32() (uint32, error) {
	v, err := Be32(c.buf, c.off)
	if err != nil {
		return 0, err
	}
	c.off += 4
	return v, nil
}

// Take returns the next n bytes without copying.
func (c *Cursor) Take(n int) ([]byte, error) {
	if c.off < 0 {
		return nil, ErrOutOfBounds
	}
	if m := need(c.buf, c.off, n); m > 0 {
		return nil, &IncompleteError{Needed: m}
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Skip advances past n bytes, which must be present.
func (c *Cursor) Skip(n int) error {
	_, err := c.Take(n)
	return err
}
