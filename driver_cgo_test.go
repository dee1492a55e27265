//go:build cgo_sqlite

// Fixtures built with mattn/go-sqlite3.
//
// Test with: go test -tags cgo_sqlite
// Requires: CGO_ENABLED=1
package litereader

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"
	driverType = "cgo"
)
