package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("", "Missing required fields", "fullName is required", "job is required")

	assert.Equal(t, "validation failed: Missing required fields (fullName is required, job is required)", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())

	withField := NewValidationError("age", "must be positive")
	assert.Equal(t, "validation failed: age - must be positive", withField.Error())
}

func TestNotFoundError(t *testing.T) {
	assert.Equal(t, "User not found", ErrUserNotFound.Error())
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, http.StatusNotFound, ErrUserNotFound.HTTPStatus())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewInternalError("failed to list users", cause)

	assert.Equal(t, "failed to list users: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())

	var hs HTTPStatuser
	require.ErrorAs(t, fmt.Errorf("list: %w", err), &hs)
	assert.Equal(t, http.StatusInternalServerError, hs.HTTPStatus())
	assert.Equal(t, "Internal server error", ErrInternal.Message)
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get user 7: %w", NewNotFoundError("user", "User not found"))

	var nf *NotFoundError
	require.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "user", nf.Resource)

	var hs HTTPStatuser
	require.True(t, errors.As(wrapped, &hs))
	assert.Equal(t, http.StatusNotFound, hs.HTTPStatus())
}
