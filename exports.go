// exports.go - Re-exports for main package API
package litereader

import (
	"github.com/wilhasse/go-litereader/format"
	"github.com/wilhasse/go-litereader/page"
	"github.com/wilhasse/go-litereader/record"
)

// Re-export types from format package
type (
	PageType          = format.PageType
	FileFormatVersion = format.FileFormatVersion
	SchemaFormat      = format.SchemaFormat
	TextEncoding      = format.TextEncoding

	UnknownValueError = format.UnknownValueError
	IncompleteError   = format.IncompleteError
)

// Re-export constants from format package
const (
	FileHeaderSize        = format.FileHeaderSize
	MagicString           = format.MagicString
	PageTypeNull          = format.PageTypeNull
	PageTypeInteriorIndex = format.PageTypeInteriorIndex
	PageTypeInteriorTable = format.PageTypeInteriorTable
	PageTypeLeafIndex     = format.PageTypeLeafIndex
	PageTypeLeafTable     = format.PageTypeLeafTable
	VersionLegacy         = format.VersionLegacy
	VersionWAL            = format.VersionWAL
	EncodingUTF8          = format.EncodingUTF8
	EncodingUTF16LE       = format.EncodingUTF16LE
	EncodingUTF16BE       = format.EncodingUTF16BE
)

// Re-export error sentinels from format package
var (
	ErrNotADatabaseFile  = format.ErrNotADatabaseFile
	ErrMalformedPageSize = format.ErrMalformedPageSize
	ErrUnknownValue      = format.ErrUnknownValue
	ErrIncomplete        = format.ErrIncomplete
)

// Re-export types from page package
type (
	FileHeader         = page.FileHeader
	BTreePageHeader    = page.BTreePageHeader
	NullPageHeader     = page.NullPageHeader
	LeafPageHeader     = page.LeafPageHeader
	InteriorPageHeader = page.InteriorPageHeader
	BTreePage          = page.BTreePage
	Freeblock          = page.Freeblock
)

// Re-export functions from page package
var (
	ParseFileHeader      = page.ParseFileHeader
	ParseBTreePageHeader = page.ParseBTreePageHeader
	ParseBTreePage       = page.ParseBTreePage
	ParseFreeblocks      = page.ParseFreeblocks
)

// Re-export from record package
type Cell = record.Cell

var (
	ParseCell = record.ParseCell
	WalkCells = record.WalkCells
)

// ParseVarint decodes a varint from the start of p and returns the value and
// the number of bytes it occupied.
func ParseVarint(p []byte) (uint64, int, error) {
	return format.Varint(p)
}
