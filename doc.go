// Package litereader provides a Go library for decoding SQLite database files.
//
// The library is organized into logical groups of functionality:
//
// Core Types and Constants (package format):
//   - types.go: Header sizes, page types and enumerated header fields
//   - endian.go: Bounds-checked big-endian readers and a forward-only cursor
//   - varint.go: SQLite variable-length integers
//   - errors.go: NotADatabaseFile, MalformedPageSize, UnknownValue, Incomplete
//
// Page Structure Components (package page):
//   - header.go: The 100-byte database file header
//   - btree.go: B-tree page headers and the cell pointer array
//   - freeblock.go: Freeblock chains inside a b-tree page
//
// Cell Handling (package record):
//   - cell.go: Child pointer, payload size and rowid at the start of a cell
//   - iter.go: Cell iteration over a decoded page
//
// I/O Operations:
//   - reader.go: Page reader over any io.ReaderAt
//   - reader_compressed.go: Memory-mapped and xz-compressed sources
//   - iter.go: Linear scan of every page in the file
//
// Decoders never log and never touch the filesystem; only the reader and the
// command line tool do I/O.
//
// Basic usage:
//
//	src, _ := litereader.Open("app.db")
//	defer src.Close()
//
//	reader := litereader.NewPageReader(src)
//	hdr, _ := reader.ReadFileHeader()
//	page, _ := reader.ReadPage(1)
//
//	if page.PageType().IsTable() {
//	    cells, _ := page.Cells()
//	    _ = cells
//	}
package litereader
