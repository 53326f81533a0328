package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrMissingAPIKey is returned when a client is built without credentials.
	ErrMissingAPIKey = errors.New("API key is required")
	// ErrBlocked is returned when the provider refuses to answer the prompt.
	ErrBlocked = errors.New("response blocked by provider")
)

// BlockedError reports a prompt or candidate stopped by provider safety filters.
type BlockedError struct {
	Model  string
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("model %s blocked the response: %s", e.Model, e.Reason)
}

func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}

// GenerationError wraps a failed provider call with the model that was asked.
type GenerationError struct {
	Model string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate content with %s: %v", e.Model, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
