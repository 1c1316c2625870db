package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalid is returned when the input fails validation or cannot be parsed.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// FieldErrors maps a field name to its violation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports FieldErrors as ErrInvalid.
func (e FieldErrors) Is(target error) bool { return target == ErrInvalid }

// ConflictError carries the message of the first unique field collision.
type ConflictError struct{ Message string }

// NewConflict returns a ConflictError with the given message.
func NewConflict(msg string) *ConflictError { return &ConflictError{Message: msg} }

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFoundError carries a client facing not found message.
type NotFoundError struct{ Message string }

// DriverNotFound returns the not found error for a driver id.
func DriverNotFound(id int64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Driver with ID %d not found", id)}
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// MalformedError reports a request parameter that could not be converted.
type MalformedError struct {
	Param string
	Value string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("Failed to convert '%s' with value: '%s'", e.Param, e.Value)
}

func (e *MalformedError) Unwrap() error { return ErrInvalid }
