package format

import (
	"errors"
	"fmt"
)

var (
	// ErrNotADatabaseFile is returned when the 16-byte magic string does not match.
	ErrNotADatabaseFile = errors.New("file is not a database")

	// ErrMalformedPageSize is returned when the page size is not a power of two.
	ErrMalformedPageSize = errors.New("malformed page size")

	// ErrUnknownValue is the sentinel behind every UnknownValueError.
	ErrUnknownValue = errors.New("unknown value")

	// ErrIncomplete is the sentinel behind every IncompleteError.
	ErrIncomplete = errors.New("incomplete input")

	ErrOutOfBounds = errors.New("negative offset")
)

// UnknownValueError reports a raw byte/word/dword outside its enumerated domain.
type UnknownValueError struct {
	Field string // field name, e.g. "text encoding"
	Width int    // 8, 16 or 32
	Raw   uint32
}

func (e *UnknownValueError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unknown %s: u%d %#x", e.Field, e.Width, e.Raw)
	}
	return fmt.Sprintf("unknown value: u%d %#x", e.Width, e.Raw)
}

func (e *UnknownValueError) Unwrap() error { return ErrUnknownValue }

// IncompleteError means the buffer ended early. Needed is how many more bytes
// would let decoding make progress; retry with a longer buffer.
type IncompleteError struct {
	Needed int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete input: need %d more bytes", e.Needed)
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

func unknown(field string, width int, raw uint32) error {
	return &UnknownValueError{Field: field, Width: width, Raw: raw}
}
