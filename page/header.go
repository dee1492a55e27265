// header.go - 100-byte database file header parsing
package page

import (
	"bytes"
	"fmt"

	"github.com/wilhasse/go-litereader/format"
)

// FileHeader is the decoded database file header. The magic string and the
// 20 reserved bytes are checked/skipped, not kept.
type FileHeader struct {
	PageSize                   uint32 // 512..65536, already mapped from the stored 1
	WriteVersion               format.FileFormatVersion
	ReadVersion                format.FileFormatVersion
	ReservedSpace              uint8
	MaxEmbeddedPayloadFraction uint8
	MinEmbeddedPayloadFraction uint8
	LeafPayloadFraction        uint8
	FileChangeCounter          uint32
	DatabaseSize               uint32 // in pages
	FreelistTrunkPage          uint32
	FreelistCount              uint32
	SchemaCookie               uint32
	SchemaFormat               format.SchemaFormat
	DefaultPageCacheSize       uint32
	LargestRootPage            uint32
	TextEncoding               format.TextEncoding
	UserVersion                uint32
	IncrementalVacuum          bool
	ApplicationID              uint32
	VersionValidFor            uint32
	SQLiteVersion              uint32
}

// ParseFileHeader decodes the file header at the start of p, field by field in
// on-disk order. The magic string is checked before anything else is read.
func ParseFileHeader(p []byte) (FileHeader, error) {
	if err := checkMagic(p, 0); err != nil {
		return FileHeader{}, err
	}

	r := newFieldReader(p, format.MagicSize)
	var h FileHeader

	raw := r.u16()
	h.PageSize = uint32(raw)
	if raw == format.PageSizeMaxSentinel {
		h.PageSize = format.MaxPageSize
	}
	if r.err == nil && !format.IsPowerOfTwo(h.PageSize) {
		return FileHeader{}, fmt.Errorf("%w: %d", format.ErrMalformedPageSize, h.PageSize)
	}

	h.WriteVersion = r.version("write version")
	h.ReadVersion = r.version("read version")
	h.ReservedSpace = r.u8()
	h.MaxEmbeddedPayloadFraction = r.u8()
	h.MinEmbeddedPayloadFraction = r.u8()
	h.LeafPayloadFraction = r.u8()
	h.FileChangeCounter = r.u32()
	h.DatabaseSize = r.u32()
	h.FreelistTrunkPage = r.u32()
	h.FreelistCount = r.u32()
	h.SchemaCookie = r.u32()
	h.SchemaFormat = r.schemaFormat()
	h.DefaultPageCacheSize = r.u32()
	h.LargestRootPage = r.u32()
	h.TextEncoding = r.textEncoding()
	h.UserVersion = r.u32()
	h.IncrementalVacuum = r.vacuumMode()
	h.ApplicationID = r.u32()
	r.skip(format.ReservedHeaderBytes)
	h.VersionValidFor = r.u32()
	h.SQLiteVersion = r.u32()

	if r.err != nil {
		return FileHeader{}, r.err
	}
	return h, nil
}

// checkMagic reports ErrNotADatabaseFile as soon as the available bytes
// disagree with the magic string, and Incomplete only for a matching prefix.
func checkMagic(p []byte, off int) error {
	avail := p[min(off, len(p)):]
	if len(avail) > format.MagicSize {
		avail = avail[:format.MagicSize]
	}
	if !bytes.HasPrefix([]byte(format.MagicString), avail) {
		return format.ErrNotADatabaseFile
	}
	if len(avail) < format.MagicSize {
		return &format.IncompleteError{Needed: format.MagicSize - len(avail)}
	}
	return nil
}

// IsValid reports whether both payload fractions hold their fixed values.
// Decoding succeeds regardless.
func (h FileHeader) IsValid() bool {
	return h.MaxEmbeddedPayloadFraction == format.MaxEmbeddedPayloadFraction &&
		h.MinEmbeddedPayloadFraction == format.MinEmbeddedPayloadFraction
}

// UsableSize is the page size minus the reserved bytes at the end of each page.
func (h FileHeader) UsableSize() uint32 {
	return h.PageSize - uint32(h.ReservedSpace)
}

// PageCount is the in-header database size. Legacy writers may leave it stale.
func (h FileHeader) PageCount() uint32 { return h.DatabaseSize }

// PageOffset is the file offset of 1-based page n.
func (h FileHeader) PageOffset(n uint32) int64 {
	return int64(n-1) * int64(h.PageSize)
}

// SQLiteVersionString renders the X*1000000+Y*1000+Z version number as X.Y.Z.
func (h FileHeader) SQLiteVersionString() string {
	v := h.SQLiteVersion
	return fmt.Sprintf("%d.%d.%d", v/1000000, v/1000%1000, v%1000)
}
