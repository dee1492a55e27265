// Package mmap provides read-only memory-mapped file access.
package mmap

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// MMap represents a read-only memory-mapped file.
type MMap struct {
	file *os.File
	data []byte
	size int64
}

// Open maps the whole file at path read-only. An empty file is opened but not
// mapped, since a zero-length mapping is rejected by the kernel.
func Open(path string) (*MMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return &MMap{file: file}, nil
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap: %w", err)
	}

	return &MMap{
		file: file,
		data: data,
		size: size,
	}, nil
}

// Close unmaps and closes the file.
func (m *MMap) Close() error {
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
		m.data = nil
	}
	if m.file != nil {
		if err := m.file.Close(); err != nil {
			return fmt.Errorf("failed to close file: %w", err)
		}
		m.file = nil
	}
	return nil
}

// Size returns the mapped size.
func (m *MMap) Size() int64 {
	return m.size
}

// Data returns the underlying byte slice.
// WARNING: Do not keep references to this slice after Close is called.
func (m *MMap) Data() []byte {
	return m.data
}

// ReadAt implements io.ReaderAt over the mapping.
func (m *MMap) ReadAt(p []byte, off int64) (int, error) {
	if m.file == nil {
		return 0, fmt.Errorf("mmap is closed")
	}
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= m.size {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Slice returns a slice of the mapped memory.
// Returns nil if the range is invalid.
func (m *MMap) Slice(offset, length int64) []byte {
	if m.data == nil {
		return nil
	}
	if offset < 0 || length < 0 || offset+length > m.size {
		return nil
	}
	return m.data[offset : offset+length]
}
