// Package common defines the sentinel errors shared across the authkeeper
// server layers. Callers should use errors.Is / errors.As to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("account already exists")

	// Service-level domain outcomes. These are resolved judgments the
	// caller can act on, as opposed to ErrInternal below.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrInternal marks indeterminate system state: store unreachable,
	// signer failure, and so on. Operations wrap it so callers can tell
	// "the system said no" apart from "the system could not tell".
	ErrInternal = errors.New("internal error")
)

// ValidationError reports which field of a write failed validation.
// Match with errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}
