package ingestion

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when an upload contains no readable text.
var ErrEmptyDocument = errors.New("document contains no text")

// UnsupportedFormatError is returned for file types that cannot be extracted.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file %q: no extension (supported: %s)", e.Filename, supportedList())
	}
	return fmt.Sprintf("unsupported file format %q (supported: %s)", e.Extension, supportedList())
}

// ExtractionError is returned when a supported file cannot be read.
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
