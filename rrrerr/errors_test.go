package rrrerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	e1 := New(CodeInvalidConfig, "bad mapping")
	e2 := New(CodeInvalidConfig, "different message, same code")
	e3 := New(CodeDeviceFailure, "device gone")

	require.True(t, errors.Is(e1, e2), "same-code errors should match via errors.Is")
	require.False(t, errors.Is(e1, e3), "different-code errors should not match")
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(CodeDeviceFailure, "mirror init failed", cause)
	require.ErrorIs(t, wrapped, cause)
}

func TestIsFatal(t *testing.T) {
	ordinary := New(CodeInvalidConfig, "nope")
	fatal := Fatal(CodeSetOverflow, "walk exceeded MaxSetSize")

	require.False(t, IsFatal(ordinary))
	require.True(t, IsFatal(fatal))

	wrapped := WrapFatal(CodeDeviceFailure, "device", errors.New("cuda error 2"))
	require.True(t, IsFatal(wrapped))
}

func TestGetCode(t *testing.T) {
	require.Equal(t, CodeSetOverflow, GetCode(New(CodeSetOverflow, "x")))
	require.Equal(t, Code(""), GetCode(errors.New("plain")))
}
