package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel all invariant violations unwrap to.
// Callers can errors.Is against it without caring which rule was broken.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a violated domain invariant. The message names
// the rule in human-readable form so upper layers can surface it directly.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// newValidationError builds a ValidationError with a formatted message.
func newValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
