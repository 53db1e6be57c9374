// Package validation checks wizard and upload inputs before any prompt is built.
package validation

import (
	"fmt"
	"strings"
)

// Error codes carried by InputError.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeSumMismatch          = "GROEPSINDELING_SUM_MISMATCH"
	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

// InputError is returned when caller input violates its contract.
type InputError struct {
	Code   string
	Errors []FieldError
	Cause  error
}

func (e *InputError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("input error (%s)", e.Code)
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("input error (%s): %s", e.Code, strings.Join(msgs, "; "))
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
