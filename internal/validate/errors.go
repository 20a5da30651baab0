package validate

import (
	"fmt"
	"net/http"
)

// User-facing messages returned by the HTTP layer.
const (
	MsgInvalidJSON      = "Invalid JSON data"
	MsgAudioRequired    = "audio field is required"
	MsgUnexpectedFields = "Invalid json data"
	MsgInvalidBase64    = "Invalid base64 value"
	MsgNotSupported     = "Not supported file format"
	MsgNoFile           = "No file uploaded"
	MsgProcessing       = "Error processing file"
)

// Error is a rejected request. Message is always safe to expose.
type Error struct {
	Status  int    // HTTP status for the response
	Message string // User-safe message
	Err     error  // Wrapped underlying error, for logging only
}

// Error implements the error interface.
// Returns the user-safe message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest returns a 400 error with message.
func BadRequest(message string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Err: err}
}

// TooLarge returns the size-limit error for limit bytes.
func TooLarge(limit int64, err error) *Error {
	return BadRequest(fmt.Sprintf("File size exceeds max limit (%s)", sizeLabel(limit)), err)
}

func sizeLabel(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
