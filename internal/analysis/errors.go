package analysis

import (
	"errors"
	"fmt"
)

// Reason classifies an analysis failure so callers can branch without parsing messages.
type Reason string

// Failure reasons.
const (
	ReasonEmptyInput    Reason = "empty_input"
	ReasonInputTooLarge Reason = "input_too_large"
	ReasonCanceled      Reason = "canceled"
	ReasonInternal      Reason = "internal"
)

// Error is the only error type returned by Service.
type Error struct {
	Reason  Reason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis %s: %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis %s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsReason reports whether err is an analysis error with the given reason.
func IsReason(err error, reason Reason) bool {
	var aerr *Error
	return errors.As(err, &aerr) && aerr.Reason == reason
}

// ReasonOf returns the reason carried by err, or "" if err is not an analysis error.
func ReasonOf(err error) Reason {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Reason
	}
	return ""
}
