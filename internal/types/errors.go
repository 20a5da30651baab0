package types

import (
	"errors"
	"fmt"

	"github.com/simonhull/audioinfo/internal/binary"
)

// ErrorKind classifies extraction failures.
type ErrorKind int

const (
	// KindUnknown is reported for errors outside the taxonomy.
	KindUnknown ErrorKind = iota
	// KindTruncated means the buffer ended before a required structure.
	KindTruncated
	// KindMalformedHeader means bytes are present but violate the format's rules.
	KindMalformedHeader
	// KindUnsupportedVariant means the structure is plausible but uses a
	// feature the engine does not parse (e.g. Opus in Ogg).
	KindUnsupportedVariant
	// KindUnsupportedFormat means the format label is outside the supported set.
	KindUnsupportedFormat
	// KindInternal means a parser faulted; it is never caused by the input alone.
	KindInternal
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindMalformedHeader:
		return "malformed_header"
	case KindUnsupportedVariant:
		return "unsupported_variant"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Sentinels matched via errors.Is by the concrete error types below.
var (
	ErrTruncated          = binary.ErrOutOfBounds
	ErrMalformedHeader    = errors.New("malformed header")
	ErrUnsupportedVariant = errors.New("unsupported variant")
	ErrUnsupportedFormat  = errors.New("unsupported format")
)

// OutOfBoundsError is returned when the buffer ends before a required field.
type OutOfBoundsError = binary.OutOfBoundsError

// UnsupportedFormatError is returned when the format label is not supported.
type UnsupportedFormatError struct {
	Label  string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("unsupported format %q: %s", e.Label, e.Reason)
	}
	return fmt.Sprintf("unsupported format: %s", e.Reason)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// CorruptedFileError is returned when the container structure is invalid.
type CorruptedFileError struct {
	Reason string
	Offset int
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("malformed header at offset %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrMalformedHeader.
func (e *CorruptedFileError) Is(target error) bool {
	return target == ErrMalformedHeader
}

// Malformed is shorthand for a *CorruptedFileError.
func Malformed(offset int, format string, args ...any) error {
	return &CorruptedFileError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedVariantError is returned for structurally plausible input that
// uses a feature the engine does not parse.
type UnsupportedVariantError struct {
	Reason string
}

func (e *UnsupportedVariantError) Error() string {
	return "unsupported variant: " + e.Reason
}

// Is reports whether target is ErrUnsupportedVariant.
func (e *UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

// Unsupported is shorthand for an *UnsupportedVariantError.
func Unsupported(format string, args ...any) error {
	return &UnsupportedVariantError{Reason: fmt.Sprintf(format, args...)}
}

// KindOf classifies err. Wrapped errors are inspected with errors.Is.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrTruncated):
		return KindTruncated
	case errors.Is(err, ErrMalformedHeader):
		return KindMalformedHeader
	case errors.Is(err, ErrUnsupportedVariant):
		return KindUnsupportedVariant
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	default:
		return KindUnknown
	}
}
