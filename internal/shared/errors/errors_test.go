package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: ticker not found", NotFound("ticker").Error())

	wrapped := Upstream("custody request failed", errors.New("connection reset"))
	assert.Equal(t, "UPSTREAM_ERROR: custody request failed: connection reset", wrapped.Error())
}

func TestGetAppError_ThroughWrapping(t *testing.T) {
	sentinel := DivisionByZero("division by zero")
	err := fmt.Errorf("quote failed: %w", sentinel)

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrCodeDivisionByZero, appErr.Code)
	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, IsAppError(err))
	assert.True(t, HasCode(err, ErrCodeDivisionByZero))
	assert.False(t, HasCode(err, ErrCodeNotFound))
}

func TestGetAppError_PlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Nil(t, GetAppError(err))
	assert.False(t, IsAppError(err))
	assert.False(t, HasCode(err, ErrCodeInternal))
}

func TestUnwrap_ExposesCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Internal("lookup failed", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestNotImplemented(t *testing.T) {
	err := NotImplemented("profile balance")
	assert.Equal(t, ErrCodeNotImplemented, err.Code)
	assert.Equal(t, "profile balance is not implemented", err.Message)
}
