package pipeline

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when company, role or job description is blank.
var ErrMissingInput = errors.New("missing input")

// ErrOffline is the model failure recorded when the model call is switched off.
var ErrOffline = errors.New("offline mode")

// InputError reports which required input was missing or unreadable.
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMissingInput, e.Cause}
	}
	return []error{ErrMissingInput}
}
