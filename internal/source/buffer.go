// Package source loads a compilation unit into memory as a contiguous,
// read-only byte range paired with a filename.
package source

import (
	"fmt"
	"os"
)

// MaxSize is the exclusive bound on a Buffer's byte count: a Buffer holds
// fewer than MaxSize bytes. The core assumes byte offsets fit in 31 bits,
// so inputs at or above this bound are rejected before any token is
// produced.
const MaxSize = 1 << 31

// Buffer is a read-only source file held in memory.
type Buffer struct {
	filename string
	bytes    []byte
}

// NewBuffer wraps an in-memory byte slice as a Buffer, validating the size
// bound that the lexer and parser rely on.
func NewBuffer(filename string, bytes []byte) (*Buffer, error) {
	if len(bytes) >= MaxSize {
		return nil, fmt.Errorf("%s: input too large (%d bytes, limit %d)", filename, len(bytes), MaxSize)
	}
	return &Buffer{filename: filename, bytes: bytes}, nil
}

// Load reads filename into memory and wraps it as a Buffer.
func Load(filename string) (*Buffer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return NewBuffer(filename, data)
}

// Filename returns the name the buffer was loaded under.
func (b *Buffer) Filename() string {
	return b.filename
}

// Bytes returns the buffer's contents. Callers must not mutate the
// returned slice; it is shared with every token and diagnostic that
// references this buffer.
func (b *Buffer) Bytes() []byte {
	return b.bytes
}

// Text is a convenience accessor for call sites that want a string view
// of the buffer rather than a byte slice.
func (b *Buffer) Text() string {
	return string(b.bytes)
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.bytes)
}
