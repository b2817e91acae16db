// pkg/substream/errors.go
package substream

import (
	"errors"
	"fmt"
)

// Common substream errors. Open-time failures resolve to one of the first
// five; ErrNotOpen covers operations on a stream that never opened or was
// already closed.
var (
	ErrMalformedIdentifier = errors.New("malformed substream identifier")
	ErrInvalidScheme       = errors.New("invalid scheme")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrNotSeekable         = errors.New("resource is not seekable")
	ErrIO                  = errors.New("input/output error")
	ErrNotOpen             = errors.New("stream is not open")
	ErrInvalidSeek         = errors.New("seek outside window")
)

// StreamError represents a substream error with additional context.
type StreamError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// NewError creates a new StreamError.
func NewError(op, path string, err error) error {
	return &StreamError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
