package fetch

import (
	"errors"
	"fmt"
)

// ErrStatus is matched by errors for non-2xx responses.
var ErrStatus = errors.New("unexpected HTTP status")

// Error describes a failed fetch. Status is set when the server answered
// with a non-2xx code.
type Error struct {
	URL     string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	if e.Cause == nil && e.Status != 0 {
		return ErrStatus
	}
	return e.Cause
}
