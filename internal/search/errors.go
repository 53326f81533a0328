package search

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when a search completed but found nothing usable.
var ErrNoResults = errors.New("no search results")

// Error represents a failed call to a search provider.
type Error struct {
	Provider string
	Query    string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s search %q: %s: %v", e.Provider, e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s search %q: %s", e.Provider, e.Query, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
