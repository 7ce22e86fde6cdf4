package taxonomy

import "fmt"

// BuildError represents an invalid taxonomy definition
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy build error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy build error: %s", e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
