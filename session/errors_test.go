package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	e := NewSessionErrorWithCause(ErrCodeTransport, "transport read failed", cause)

	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "TRANSPORT_ERROR")
	assert.Contains(t, e.Error(), "connection reset")
}

func TestSessionErrorDetails(t *testing.T) {
	e := NewSessionErrorWithDetails(ErrCodeSyntax, "command rejected",
		map[string]interface{}{"command": "show verson"})
	e.AddDetail("signature", "% Invalid input")

	assert.Equal(t, "show verson", e.Details["command"])
	assert.Equal(t, "% Invalid input", e.Details["signature"])
}

func TestGetSessionError(t *testing.T) {
	e := NewSessionError(ErrCodeTimeout, "timeout waiting for prompt")
	require.NotNil(t, GetSessionError(e))
	assert.Nil(t, GetSessionError(errors.New("plain")))
	assert.True(t, IsErrorCode(e, ErrCodeTimeout))
	assert.False(t, IsErrorCode(e, ErrCodeTransport))
}
