package rngstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitIsDeterministic(t *testing.T) {
	m := NewMaster(42)
	a := m.Split(4, 1)
	b := NewMaster(42).Split(4, 1)

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Uniform01(), b.Uniform01(), "draw %d", i)
	}
}

func TestSplitStreamsAreDistinct(t *testing.T) {
	m := NewMaster(7)
	a := m.Split(3, 0)
	b := m.Split(3, 1)

	diverged := false
	for i := 0; i < 8; i++ {
		if a.Uniform01() != b.Uniform01() {
			diverged = true
			break
		}
	}
	require.True(t, diverged, "streams for different indices should not produce identical sequences")
}

func TestChangingTotalChangesStream(t *testing.T) {
	m := NewMaster(7)
	a := m.Split(3, 1)
	b := m.Split(5, 1)

	diverged := false
	for i := 0; i < 8; i++ {
		if a.Uniform01() != b.Uniform01() {
			diverged = true
			break
		}
	}
	require.True(t, diverged, "the same index under different totals should not produce identical sequences")
}

func TestUniformPos01NeverZero(t *testing.T) {
	s := NewMaster(1).Split(1, 0)
	for i := 0; i < 10000; i++ {
		v := s.UniformPos01()
		require.Greater(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestIntNRange(t *testing.T) {
	s := NewMaster(5).Split(1, 0)
	for i := 0; i < 1000; i++ {
		v := s.IntN(7)
		require.GreaterOrEqual(t, v, int32(0))
		require.Less(t, v, int32(7))
	}
}

func TestSplitRejectsOutOfRange(t *testing.T) {
	require.Panics(t, func() { NewMaster(1).Split(2, 2) })
}
