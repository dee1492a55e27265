package format

// MaxVarintLen is the longest SQLite varint encoding.
const MaxVarintLen = 9

// Varint decodes a SQLite variable-length integer from the start of p.
//
// The first eight bytes contribute their low 7 bits each, high bit set meaning
// "more follows". A ninth byte contributes all 8 bits and always ends the value.
// n is exactly the number of bytes that made up the value. If p ends before the
// value does, the error is an *IncompleteError asking for 9 minus the bytes seen.
func Varint(p []byte) (v uint64, n int, err error) {
	for i, c := range p {
		if i == MaxVarintLen-1 {
			return v<<8 | uint64(c), MaxVarintLen, nil
		}
		v = v<<7 | uint64(c&0x7f)
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, &IncompleteError{Needed: MaxVarintLen - len(p)}
}

// VarintAt decodes a varint starting at off.
func VarintAt(p []byte, off int) (uint64, int, error) {
	if off < 0 {
		return 0, 0, ErrOutOfBounds
	}
	if off > len(p) {
		return 0, 0, &IncompleteError{Needed: off - len(p) + 1}
	}
	return Varint(p[off:])
}

// Varint reads a varint at the cursor and advances past it.
func (c *Cursor) Varint() (uint64, error) {
	v, n, err := VarintAt(c.buf, c.off)
	if err != nil {
		return 0, err
	}
	c.off += n
	return v, nil
}

// PutVarint encodes v into p, which must hold at least VarintLen(v) bytes,
// and returns the number of bytes written.
func PutVarint(p []byte, v uint64) int {
	if v > 1<<56-1 {
		p[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			p[i] = byte(v&0x7f) | 0x80
			v >>= 7
		}
		return MaxVarintLen
	}
	n := VarintLen(v)
	for i := n - 1; i >= 0; i-- {
		b := byte(v & 0x7f)
		if i != n-1 {
			b |= 0x80
		}
		p[i] = b
		v >>= 7
	}
	return n
}

// VarintLen returns the number of bytes PutVarint needs for v.
func VarintLen(v uint64) int {
	if v > 1<<56-1 {
		return MaxVarintLen
	}
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}
