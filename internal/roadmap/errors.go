package roadmap

import (
	"errors"
	"fmt"

	"github.com/jonathan/interview-roadmap/internal/extraction"
)

// ErrorKind classifies why a candidate roadmap was rejected.
type ErrorKind string

// Validation error kinds.
const (
	KindMissingField    ErrorKind = "missing_field"
	KindInvalidEnum     ErrorKind = "invalid_enum"
	KindEmptyCollection ErrorKind = "empty_collection"
)

// Sentinels matched by ValidationError via errors.Is.
var (
	ErrMissingField    = errors.New("missing field")
	ErrInvalidEnum     = errors.New("invalid enum value")
	ErrEmptyCollection = errors.New("empty collection")
)

// ErrNoModelOutput is the fallback reason when no model text was available.
var ErrNoModelOutput = errors.New("no model output")

// ValidationError names the first required field that was missing or malformed.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Is maps the error kind onto its sentinel.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case KindMissingField:
		return target == ErrMissingField
	case KindInvalidEnum:
		return target == ErrInvalidEnum
	case KindEmptyCollection:
		return target == ErrEmptyCollection
	}
	return false
}

func missingField(field, message string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Field: field, Message: message}
}

func invalidEnum(field, message string) *ValidationError {
	return &ValidationError{Kind: KindInvalidEnum, Field: field, Message: message}
}

func emptyCollection(field string) *ValidationError {
	return &ValidationError{Kind: KindEmptyCollection, Field: field, Message: "must not be empty"}
}

// Warning is a soft validation finding that does not reject the roadmap.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// ReasonLabel returns a short stable label for a fallback reason, suitable
// for metrics and logs. A nil error yields "".
func ReasonLabel(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return string(verr.Kind)
	case errors.Is(err, extraction.ErrMalformed):
		return "malformed_output"
	case errors.Is(err, ErrNoModelOutput):
		return "no_model_output"
	default:
		return "other"
	}
}
