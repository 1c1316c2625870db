package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"service-driver/internal/apperr"
)

func TestFieldErrors_IsInvalid(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create: %w", apperr.FieldErrors{"name": "Name is required", "email": "Email is required"})
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.Equal(t, "create: validation failed: email: Email is required; name: Name is required", err.Error())

	var fe apperr.FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Len(t, fe, 2)
}

func TestConflictError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("update driver: %w", apperr.NewConflict("Email already exists"))
	require.ErrorIs(t, err, apperr.ErrConflict)

	var ce *apperr.ConflictError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "Email already exists", ce.Message)
}

func TestDriverNotFound(t *testing.T) {
	t.Parallel()

	err := apperr.DriverNotFound(9999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, "Driver with ID 9999 not found", err.Error())
}

func TestMalformedError(t *testing.T) {
	t.Parallel()

	err := &apperr.MalformedError{Param: "id", Value: "1a"}
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.Equal(t, "Failed to convert 'id' with value: '1a'", err.Error())
}
