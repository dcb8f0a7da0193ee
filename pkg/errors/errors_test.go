package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "INVALID_INPUT", http.StatusBadRequest, "bad payload")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad payload")
	assert.Contains(t, err.Error(), "boom")
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := FromError(ErrInfeasible)
	assert.Equal(t, ErrInfeasible.Code, appErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)

	wrapped := fmt.Errorf("context: %w", ErrNotFound)
	assert.Equal(t, ErrNotFound.Code, FromError(wrapped).Code)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	clone := Clone(ErrInvalidInput, "custom message")
	require.NotNil(t, clone)
	assert.Equal(t, "custom message", clone.Message)
	assert.Equal(t, ErrInvalidInput.Code, clone.Code)
	assert.Equal(t, ErrInvalidInput.Status, clone.Status)
	assert.Equal(t, "invalid input", ErrInvalidInput.Message, "original must stay untouched")
}
