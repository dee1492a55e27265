// types.go - Sizes, constants and enumerated field domains
package format

import "strconv"

// Sizes and constants
const (
	FileHeaderSize = 100
	MagicString    = "SQLite format 3\x00"
	MagicSize      = 16

	MinPageSize = 512
	MaxPageSize = 65536

	// page_size value 1 stands for MaxPageSize
	PageSizeMaxSentinel = 1
	// cell_content_offset value 0 stands for MaxCellContentOffset
	MaxCellContentOffset = 65536

	PageHeaderSizeLeaf     = 8
	PageHeaderSizeInterior = 12
	CellPointerSize        = 2
	FreeblockHeaderSize    = 4

	ReservedHeaderBytes = 20

	// fixed values of the two payload fraction bytes
	MaxEmbeddedPayloadFraction = 64
	MinEmbeddedPayloadFraction = 32
)

// IsPowerOfTwo reports whether x has exactly one bit set.
func IsPowerOfTwo(x uint32) bool { return x != 0 && x&(x-1) == 0 }

// IsValidPageSize reports whether size is a power of two in [MinPageSize, MaxPageSize].
func IsValidPageSize(size uint32) bool {
	return IsPowerOfTwo(size) && size >= MinPageSize && size <= MaxPageSize
}

// FileFormatVersion is the read/write version byte of the file header.
type FileFormatVersion uint8

const (
	VersionLegacy FileFormatVersion = 1
	VersionWAL    FileFormatVersion = 2
)

func ParseFileFormatVersion(field string, raw uint8) (FileFormatVersion, error) {
	switch v := FileFormatVersion(raw); v {
	case VersionLegacy, VersionWAL:
		return v, nil
	}
	return 0, unknown(field, 8, uint32(raw))
}

func (v FileFormatVersion) String() string {
	switch v {
	case VersionLegacy:
		return "Legacy"
	case VersionWAL:
		return "WAL"
	}
	return "FileFormatVersion(" + strconv.Itoa(int(v)) + ")"
}

type SchemaFormat uint32

const (
	SchemaFormat1 SchemaFormat = 1
	SchemaFormat2 SchemaFormat = 2
	SchemaFormat3 SchemaFormat = 3
	SchemaFormat4 SchemaFormat = 4
)

func ParseSchemaFormat(raw uint32) (SchemaFormat, error) {
	switch f := SchemaFormat(raw); f {
	case SchemaFormat1, SchemaFormat2, SchemaFormat3, SchemaFormat4:
		return f, nil
	}
	return 0, unknown("schema format", 32, raw)
}

func (f SchemaFormat) String() string { return strconv.FormatUint(uint64(f), 10) }

type TextEncoding uint32

const (
	EncodingUTF8    TextEncoding = 1
	EncodingUTF16LE TextEncoding = 2
	EncodingUTF16BE TextEncoding = 3
)

func ParseTextEncoding(raw uint32) (TextEncoding, error) {
	switch e := TextEncoding(raw); e {
	case EncodingUTF8, EncodingUTF16LE, EncodingUTF16BE:
		return e, nil
	}
	return 0, unknown("text encoding", 32, raw)
}

func (e TextEncoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16le"
	case EncodingUTF16BE:
		return "UTF-16be"
	}
	return "TextEncoding(" + strconv.FormatUint(uint64(e), 10) + ")"
}

// ParseVacuumMode maps the incremental-vacuum dword, which must be 0 or 1.
func ParseVacuumMode(raw uint32) (bool, error) {
	switch raw {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, unknown("incremental vacuum mode", 32, raw)
}

// PageType is the first byte of a b-tree page header.
type PageType uint8

const (
	PageTypeNull          PageType = 0x00
	PageTypeInteriorIndex PageType = 0x02
	PageTypeInteriorTable PageType = 0x05
	PageTypeLeafIndex     PageType = 0x0a
	PageTypeLeafTable     PageType = 0x0d
)

func ParsePageType(raw uint8) (PageType, error) {
	switch t := PageType(raw); t {
	case PageTypeNull, PageTypeInteriorIndex, PageTypeInteriorTable,
		PageTypeLeafIndex, PageTypeLeafTable:
		return t, nil
	}
	return 0, unknown("page type", 8, uint32(raw))
}

// IsInterior reports whether the page header carries a right-most pointer.
func (t PageType) IsInterior() bool {
	return t == PageTypeInteriorIndex || t == PageTypeInteriorTable
}

func (t PageType) IsLeaf() bool {
	return t == PageTypeLeafIndex || t == PageTypeLeafTable
}

func (t PageType) IsTable() bool {
	return t == PageTypeInteriorTable || t == PageTypeLeafTable
}

func (t PageType) IsIndex() bool {
	return t == PageTypeInteriorIndex || t == PageTypeLeafIndex
}

// HeaderSize is 12 for interior pages and 8 otherwise.
func (t PageType) HeaderSize() int {
	if t.IsInterior() {
		return PageHeaderSizeInterior
	}
	return PageHeaderSizeLeaf
}

func (t PageType) String() string {
	switch t {
	case PageTypeNull:
		return "null"
	case PageTypeInteriorIndex:
		return "interior index"
	case PageTypeInteriorTable:
		return "interior table"
	case PageTypeLeafIndex:
		return "leaf index"
	case PageTypeLeafTable:
		return "leaf table"
	}
	return "PageType(0x" + strconv.FormatUint(uint64(t), 16) + ")"
}
