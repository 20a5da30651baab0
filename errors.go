package audioinfo

import (
	"errors"
	"fmt"

	"github.com/simonhull/audioinfo/internal/types"
)

// ErrorKind is an alias to types.ErrorKind.
type ErrorKind = types.ErrorKind

// Re-export the error kinds.
const (
	KindUnknown            = types.KindUnknown
	KindTruncated          = types.KindTruncated
	KindMalformedHeader    = types.KindMalformedHeader
	KindUnsupportedVariant = types.KindUnsupportedVariant
	KindUnsupportedFormat  = types.KindUnsupportedFormat
	KindInternal           = types.KindInternal
)

// Sentinels for errors.Is.
var (
	ErrTruncated          = types.ErrTruncated
	ErrMalformedHeader    = types.ErrMalformedHeader
	ErrUnsupportedVariant = types.ErrUnsupportedVariant
	ErrUnsupportedFormat  = types.ErrUnsupportedFormat
	ErrInternal           = errors.New("internal parser fault")
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedVariantError is an alias to types.UnsupportedVariantError.
type UnsupportedVariantError = types.UnsupportedVariantError

// ExtractionError is returned by every failed extraction.
type ExtractionError struct {
	Format Format    // FormatUnknown if the label was rejected
	Kind   ErrorKind // Classification of Err
	Err    error     // Underlying parser error
}

func (e *ExtractionError) Error() string {
	if e.Format == FormatUnknown {
		return fmt.Sprintf("extract: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extract %s: %s: %v", e.Format, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInternal for internal faults.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrInternal && e.Kind == KindInternal
}

// KindOf returns the ErrorKind of err, or KindUnknown if err did not come
// from an extraction.
func KindOf(err error) ErrorKind {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return types.KindOf(err)
}

// newExtractionError classifies err. Errors outside the taxonomy are
// reported as internal faults.
func newExtractionError(format Format, err error) *ExtractionError {
	kind := types.KindOf(err)
	if kind == KindUnknown {
		kind = KindInternal
	}
	return &ExtractionError{Format: format, Kind: kind, Err: err}
}
