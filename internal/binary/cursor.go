package binary

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrTruncated is returned when a declared size or offset runs past the
// end of the available bytes.
var ErrTruncated = errors.New("truncated buffer")

// Cursor is a bounds-checked view over an in-memory byte slice.
//
// Every accessor is fallible: asking for more bytes than remain returns an
// error wrapping ErrTruncated and leaves the cursor where it was, so callers
// can keep whatever they already decoded.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor creates a Cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Offset returns the current position relative to the start of the buffer.
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

func (c *Cursor) need(n int, what string) error {
	if n < 0 || n > c.Remaining() {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, %d remaining",
			ErrTruncated, what, n, c.off, c.Remaining())
	}
	return nil
}

// Take returns the next n bytes and advances past them. The returned slice
// aliases the underlying buffer.
func (c *Cursor) Take(n int, what string) ([]byte, error) {
	if err := c.need(n, what); err != nil {
		return nil, err
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int, what string) ([]byte, error) {
	if err := c.need(n, what); err != nil {
		return nil, err
	}
	return c.buf[c.off : c.off+n], nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int, what string) error {
	if err := c.need(n, what); err != nil {
		return err
	}
	c.off += n
	return nil
}

// Rest returns all unread bytes and moves the cursor to the end.
func (c *Cursor) Rest() []byte {
	b := c.buf[c.off:]
	c.off = len(c.buf)
	return b
}

// TakeUntilNull returns the bytes up to a null terminator of the given width
// (1 for 8-bit encodings, 2 for UTF-16) and advances past the terminator.
// Two-byte terminators are only matched on even offsets from the current
// position. A missing terminator is reported as truncation.
func (c *Cursor) TakeUntilNull(width int, what string) ([]byte, error) {
	rest := c.buf[c.off:]
	end := NullIndex(rest, width)
	if end < 0 {
		return nil, fmt.Errorf("%w: %s has no terminator at offset %d", ErrTruncated, what, c.off)
	}
	c.off += end + width
	return rest[:end], nil
}

// NullIndex returns the index of the first null terminator of the given width
// in b, or -1 when there is none.
func NullIndex(b []byte, width int) int {
	if width == 2 {
		for i := 0; i+1 < len(b); i += 2 {
			if b[i] == 0 && b[i+1] == 0 {
				return i
			}
		}
		return -1
	}
	return bytes.IndexByte(b, 0)
}

// Syncsafe32 reads a 4-byte syncsafe integer.
func (c *Cursor) Syncsafe32(what string) (uint32, error) {
	b, err := c.Take(4, what)
	if err != nil {
		return 0, err
	}
	return Syncsafe(b), nil
}

// Read reads an unsigned integer of type T with the given byte order and
// advances the cursor.
//
// Example:
//
//	count, err := binary.Read[uint32](c, binary.LittleEndian, "comment count")
func Read[T uint8 | uint16 | uint32 | uint64](c *Cursor, endian Endianness, what string) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	b, err := c.Take(size, what)
	if err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(b[0])
	case uint16:
		val = T(Uint16(b, endian))
	case uint32:
		val = T(Uint32(b, endian))
	case uint64:
		val = T(Uint64(b, endian))
	}
	return val, nil
}
