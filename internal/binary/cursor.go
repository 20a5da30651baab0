// Package binary provides bounds-checked binary reading primitives over
// in-memory buffers.
//
// Every container parser reads through a Cursor. A read that would run past
// the end of the buffer fails with *OutOfBoundsError and leaves the cursor
// where it was, so parsers never index the underlying slice directly.
package binary

import "fmt"

// Cursor is a forward reader over an immutable byte slice.
//
// The zero value is an empty cursor. Cursor never writes to the buffer, and
// slices it hands out have their capacity clipped so that appending to them
// cannot overwrite the source.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a Cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// check verifies that n bytes can be read at the current position.
func (c *Cursor) check(n int, what string) error {
	if n < 0 || n > c.Remaining() {
		return &OutOfBoundsError{
			What:   what,
			Offset: c.pos,
			Length: n,
			Size:   len(c.buf),
		}
	}
	return nil
}

// Seek moves the cursor to an absolute position.
//
// Seeking to Len() is allowed and leaves nothing to read.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return &OutOfBoundsError{What: "seek target", Offset: pos, Size: len(c.buf)}
	}
	c.pos = pos
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int, what string) error {
	if n < 0 {
		return fmt.Errorf("skip %s: negative length %d", what, n)
	}
	if err := c.check(n, what); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int, what string) ([]byte, error) {
	if err := c.check(n, what); err != nil {
		return nil, err
	}
	return c.buf[c.pos : c.pos+n : c.pos+n], nil
}

// Bytes returns the next n bytes and advances past them.
func (c *Cursor) Bytes(n int, what string) ([]byte, error) {
	b, err := c.Peek(n, what)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// String reads n bytes as a string (used for FourCCs and magic markers).
func (c *Cursor) String(n int, what string) (string, error) {
	b, err := c.Bytes(n, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadValue reads a numeric value with the given byte order and advances.
//
// Example:
//
//	size, err := binary.ReadValue[uint32](c, binary.LittleEndian, "chunk size")
func ReadValue[T Unsigned](c *Cursor, endian Endianness, what string) (T, error) {
	b, err := c.Bytes(sizeOf[T](), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](b, endian), nil
}

// U8 reads a single byte.
func (c *Cursor) U8(what string) (uint8, error) {
	return ReadValue[uint8](c, BigEndian, what)
}

// U16 reads a 16-bit value.
func (c *Cursor) U16(endian Endianness, what string) (uint16, error) {
	return ReadValue[uint16](c, endian, what)
}

// U32 reads a 32-bit value.
func (c *Cursor) U32(endian Endianness, what string) (uint32, error) {
	return ReadValue[uint32](c, endian, what)
}

// U64 reads a 64-bit value.
func (c *Cursor) U64(endian Endianness, what string) (uint64, error) {
	return ReadValue[uint64](c, endian, what)
}

// Chain allows reading a fixed record with deferred error checking.
// This avoids repetitive "if err != nil" checks.
//
// After the first failure every further read is a no-op returning zero.
type Chain struct {
	c      *Cursor
	endian Endianness
	err    error
}

// NewChain creates a Chain reading from c with the given byte order.
func NewChain(c *Cursor, endian Endianness) *Chain {
	return &Chain{c: c, endian: endian}
}

// ReadChained reads a value, accumulating any error.
func ReadChained[T Unsigned](ch *Chain, what string) T {
	if ch.err != nil {
		var zero T
		return zero
	}
	val, err := ReadValue[T](ch.c, ch.endian, what)
	if err != nil {
		ch.err = err
	}
	return val
}

// U16 reads a 16-bit value, accumulating any error.
func (ch *Chain) U16(what string) uint16 {
	return ReadChained[uint16](ch, what)
}

// U32 reads a 32-bit value, accumulating any error.
func (ch *Chain) U32(what string) uint32 {
	return ReadChained[uint32](ch, what)
}

// Error returns the first error encountered, if any.
func (ch *Chain) Error() error {
	return ch.err
}
