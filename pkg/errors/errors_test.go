package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrUnknownPath, "no control at path")

	assert.Equal(t, ErrUnknownPath, err.Code)
	assert.Equal(t, "no control at path", err.Message)
	assert.Equal(t, "[UNKNOWN_PATH] no control at path", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrEnumInvalid, "value %q not in option set", "option3")

	assert.Equal(t, ErrEnumInvalid, err.Code)
	assert.Equal(t, `[ENUM_INVALID] value "option3" not in option set`, err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps underlying error", func(t *testing.T) {
		inner := fmt.Errorf("connection refused")
		err := Wrap(inner, ErrFetchFailed, "fetching image")

		require.NotNil(t, err)
		assert.Equal(t, ErrFetchFailed, err.Code)
		assert.Equal(t, inner, errors.Unwrap(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrFetchFailed, "fetching image"))
		assert.Nil(t, Wrapf(nil, ErrFetchFailed, "fetching %s", "x"))
	})
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrTypeMismatch, "boolean required")

	assert.True(t, IsErrorCode(err, ErrTypeMismatch))
	assert.False(t, IsErrorCode(err, ErrUnknownPath))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrTypeMismatch))
	assert.False(t, IsErrorCode(nil, ErrTypeMismatch))
}

func TestIsErrorCodeWrapped(t *testing.T) {
	inner := New(ErrDecodeFailed, "not a png")
	outer := fmt.Errorf("substitution: %w", inner)

	assert.True(t, IsErrorCode(outer, ErrDecodeFailed))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrBadPath, GetErrorCode(New(ErrBadPath, "two segments")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrUnknownPath, "no control").
		WithDetail("path", "stateMachines.MainSM.missing")

	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "stateMachines.MainSM.missing", details["path"])

	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}

func TestErrorsIs(t *testing.T) {
	err := New(ErrEnumInvalid, "bad option")

	assert.True(t, errors.Is(err, New(ErrEnumInvalid, "other message")))
	assert.False(t, errors.Is(err, New(ErrTypeMismatch, "bad option")))
}
