package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-matcher/internal/analysis"
	"github.com/jonathan/skill-matcher/internal/db"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing analysis record
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// ErrHistoryDisabled indicates the server runs without a store
type ErrHistoryDisabled struct{}

func (e *ErrHistoryDisabled) Error() string {
	return "analysis history is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		disabled   *ErrHistoryDisabled
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &disabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	}

	switch analysis.ReasonOf(err) {
	case analysis.ReasonEmptyInput:
		return http.StatusUnprocessableEntity
	case analysis.ReasonInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case analysis.ReasonCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ReasonOf returns the machine-readable reason reported with err
func ReasonOf(err error) string {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		disabled   *ErrHistoryDisabled
		tooLarge   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return "not_found"
	case errors.As(err, &disabled):
		return "history_disabled"
	case errors.As(err, &tooLarge):
		return string(analysis.ReasonInputTooLarge)
	}
	if reason := analysis.ReasonOf(err); reason != "" {
		return string(reason)
	}
	return string(analysis.ReasonInternal)
}

// validationError converts validator output to the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
