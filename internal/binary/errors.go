package binary

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every *OutOfBoundsError via errors.Is.
var ErrOutOfBounds = errors.New("read out of bounds")

// OutOfBoundsError is returned when a read would run past the end of the buffer.
type OutOfBoundsError struct {
	What   string
	Offset int
	Length int
	Size   int
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("offset %d out of bounds (buffer size: %d) while reading %s",
			e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("read of %d bytes at offset %d would exceed buffer size %d while reading %s",
		e.Length, e.Offset, e.Size, e.What)
}

// Is reports whether target is ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
