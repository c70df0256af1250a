// Package gvdb reads and writes GVDB files, the binary hash-table format dconf uses for
// its settings databases (for example ~/.config/dconf/user).
//
// A file is a header followed by a root hash table. Each table item has a key segment,
// an optional parent item (so "/org/gnome/" can be stored once and shared by every key
// below it) and a typed payload: a GVariant value ('v'), a list of child items ('L'),
// or a nested hash table ('H').
package gvdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

const (
	headerSize = 24
	itemSize   = 24

	noParent = 0xffffffff
)

var (
	signatureLE = []byte("GVariant")
	signatureBE = []byte("raVGtnai")
)

var (
	// ErrInvalidFile is returned when data is not a well-formed GVDB file.
	ErrInvalidFile = errors.New("gvdb: invalid file")

	// ErrNotFound is returned when a key is not present in a table.
	ErrNotFound = errors.New("gvdb: key not found")

	// ErrNotValue is returned when a key exists but holds a list or table instead of a value.
	ErrNotValue = errors.New("gvdb: item holds no value")
)

// File is a parsed GVDB file held in memory.
type File struct {
	data  []byte
	order binary.ByteOrder
	root  pointer
}

type pointer struct {
	start uint32
	end   uint32
}

// Open reads and parses the GVDB file at path.
func Open(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a GVDB file from memory. The slice is retained, not copied.
func Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalidFile, len(data))
	}

	var order binary.ByteOrder
	switch {
	case bytes.Equal(data[:8], signatureLE):
		order = binary.LittleEndian
	case bytes.Equal(data[:8], signatureBE):
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: bad signature", ErrInvalidFile)
	}

	if version := order.Uint32(data[8:12]); version != 0 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFile, version)
	}

	return &File{
		data:  data,
		order: order,
		root:  readPointer(data[16:24], order),
	}, nil
}

// ByteOrder returns the byte order the file was written in.
func (f *File) ByteOrder() binary.ByteOrder {
	return f.order
}

// Root returns the file's root hash table.
func (f *File) Root() (*Table, error) {
	return f.table(f.root)
}

func readPointer(b []byte, order binary.ByteOrder) pointer {
	return pointer{start: order.Uint32(b[0:4]), end: order.Uint32(b[4:8])}
}

// deref returns the bytes a pointer refers to, checking bounds and alignment.
func (f *File) deref(p pointer, alignment uint32) ([]byte, error) {
	if p.start > p.end || int64(p.end) > int64(len(f.data)) {
		return nil, fmt.Errorf("%w: pointer %d..%d out of range", ErrInvalidFile, p.start, p.end)
	}
	if p.start&(alignment-1) != 0 {
		return nil, fmt.Errorf("%w: pointer %d not aligned to %d", ErrInvalidFile, p.start, alignment)
	}
	return f.data[p.start:p.end], nil
}
