package ingestion

import "fmt"

// Error represents a failure to load or convert an input document
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
