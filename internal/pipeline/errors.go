package pipeline

import "fmt"

// GenerationError is returned when no attempt produced any text from the model.
type GenerationError struct {
	Attempts int
	Reason   string
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed after %d attempt(s): %s: %v", e.Attempts, e.Reason, e.Cause)
	}
	return fmt.Sprintf("generation failed after %d attempt(s): %s", e.Attempts, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
