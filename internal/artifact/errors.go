package artifact

import "fmt"

// WriteError represents a failure to persist a roadmap artifact.
type WriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to write roadmap %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to write roadmap %s: %s", e.Path, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// LoadError represents a failure to read a roadmap artifact.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load roadmap %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load roadmap %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
