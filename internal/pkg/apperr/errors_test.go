package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), 400},
		{Auth("no token"), 401},
		{NotFound("gone"), 404},
		{Conflict("duplicate"), 409},
		{Unavailable("db down", nil), 503},
		{Internal("boom", nil), 500},
	}

	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Status(), c.err.Message)
	}
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := NotFound("Chat not found or unauthorized")
	wrapped := fmt.Errorf("handler: %w", inner)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "Chat not found or unauthorized", appErr.Message)
}

func TestAsRejectsPlainErrors(t *testing.T) {
	_, ok := As(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Internal("failed to create user", cause)

	assert.Equal(t, "failed to create user", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}
