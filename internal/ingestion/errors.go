package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned when a source yields no text after cleaning
	ErrEmptyDocument = errors.New("job description is empty")
	// ErrUnsupportedFormat is returned for file extensions we cannot read
	ErrUnsupportedFormat = errors.New("unsupported job description format")
)

// Error represents a failure to load a job description from a source.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load job description from %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load job description from %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
