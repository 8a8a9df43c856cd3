// Package common provides shared utilities and types used across the pipeline.
package common

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy.
var (
	// ErrEmptyDocument rejects zero-byte payloads at the pipeline boundary.
	ErrEmptyDocument = errors.New("empty document")
	// ErrUnsupportedInput rejects top-level input the pipeline cannot accept.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrFormatUnrecognized means detection could not confidently pick a
	// strategy. The pipeline proceeds best-effort; this is not fatal.
	ErrFormatUnrecognized = errors.New("format unrecognized")
	// ErrExtractionEmpty means no transactions were recoverable. Surfaced as
	// an empty-but-flagged result, never as a batch-aborting failure.
	ErrExtractionEmpty = errors.New("extraction empty")
	// ErrFieldNotFound means an expected labeled field was absent from text.
	ErrFieldNotFound = errors.New("field not found")
	// ErrProviderUnavailable means an external OCR provider is unreachable.
	ErrProviderUnavailable = errors.New("ocr provider unavailable")
)

// UserError carries a message safe to show to the caller alongside the
// underlying cause.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{UserMessage: userMessage, Err: err}
}
