package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by natural key matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a create hits an existing natural key.
	ErrConflict = errors.New("already exists")

	// ErrValidation marks client input that cannot be accepted.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable is returned when the document store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError carries a client-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
