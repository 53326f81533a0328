package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for errors.Is checks by callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Error reports a configuration problem, optionally tied to one key.
type Error struct {
	Kind    error
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("'%s' %s", e.Key, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("config error: %s", msg)
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func invalid(key, message string) *Error {
	return &Error{Kind: ErrInvalidConfig, Key: key, Message: message}
}
