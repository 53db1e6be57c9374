package llm

import (
	"errors"
	"fmt"
)

// ErrNoText is returned when the model answered without any text parts.
var ErrNoText = errors.New("no text in model response")

// APICallError represents a failed call to the model provider
type APICallError struct {
	Model   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call to %s failed: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("API call to %s failed: %s", e.Model, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
