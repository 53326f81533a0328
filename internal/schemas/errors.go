package schemas

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaMismatch is matched by every ValidationError.
var ErrSchemaMismatch = errors.New("document does not match schema")

// FieldError is one schema violation. Field is a dotted path such as
// rounds.0.topics, or (root) for violations on the document itself.
type FieldError struct {
	Field   string
	Kind    string // gojsonschema error type: required, enum, array_min_items, ...
	Message string
}

// ValidationError lists every violation found in a document, ordered by field.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation against %s failed:\n", ve.Schema)
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

func (ve *ValidationError) Unwrap() error {
	return ErrSchemaMismatch
}

// SchemaLoadError reports a schema that could not be read or compiled.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}
