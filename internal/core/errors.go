package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the resource is owned by another user.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken indicates a registration conflict.
	ErrUsernameTaken = errors.New("username already exists")
)

// ValidationError reports a malformed or out-of-range input field.
// It is surfaced to callers with field-level detail and never coerced.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
