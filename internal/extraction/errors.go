package extraction

import (
	"errors"
	"fmt"
)

// snippetLength bounds how much raw text is echoed into logs
const snippetLength = 500

// ErrMalformed is matched by every MalformedError via errors.Is.
var ErrMalformed = errors.New("malformed model output")

// MalformedError reports that no usable JSON object could be read from the text.
// Raw keeps the full input so callers can log it.
type MalformedError struct {
	Raw    string
	Reason string
	Cause  error
}

func (e *MalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrMalformed.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// Snippet returns the leading part of the raw text for diagnostics.
func (e *MalformedError) Snippet() string {
	runes := []rune(e.Raw)
	if len(runes) <= snippetLength {
		return e.Raw
	}
	return string(runes[:snippetLength]) + "..."
}
