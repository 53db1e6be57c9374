// Package server provides the HTTP API for prompt building, analysis and generation of groepsplannen.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/groepsplan/internal/experiments"
	"github.com/jonathan/groepsplan/internal/ingestion"
	"github.com/jonathan/groepsplan/internal/llm"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/validation"
)

// Error codes in error responses. Input errors carry the codes from the validation package.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeUnknownExperiment = "UNKNOWN_EXPERIMENT"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeUnreadableUpload  = "UNREADABLE_UPLOAD"
	CodeGenerationFailed  = "GENERATION_FAILED"
	CodeTimeout           = "TIMEOUT"
	CodeUnavailable       = "UNAVAILABLE"
	CodeInternal          = "INTERNAL"
)

// ErrDocumentNotFound indicates no document with the id is visible to the caller
type ErrDocumentNotFound struct {
	ID uuid.UUID
}

func (e *ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.ID)
}

// ErrValidation indicates a malformed request, before any domain validation
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a collaborator the route needs is not configured
type ErrUnavailable struct {
	Component string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Component)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// classify maps an error to its status code and response code.
func classify(err error) (int, string) {
	var (
		inputErr      *validation.InputError
		requestErr    *ErrValidation
		notFound      *ErrDocumentNotFound
		unavailable   *ErrUnavailable
		unsupported   *ingestion.UnsupportedFormatError
		extractionErr *ingestion.ExtractionError
		generationErr *pipeline.GenerationError
		apiErr        *llm.APICallError
	)
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Code
	case errors.As(err, &requestErr):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, experiments.ErrUnknownExperiment), errors.Is(err, experiments.ErrUnknownVariant):
		return http.StatusBadRequest, CodeUnknownExperiment
	case errors.As(err, &notFound):
		return http.StatusNotFound, CodeNotFound
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType, CodeUnsupportedFormat
	case errors.Is(err, ingestion.ErrEmptyDocument), errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity, CodeUnreadableUpload
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	case errors.As(err, &generationErr), errors.As(err, &apiErr):
		return http.StatusBadGateway, CodeGenerationFailed
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
