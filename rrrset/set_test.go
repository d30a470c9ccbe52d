package rrrset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderDedupesAndSorts(t *testing.T) {
	b := NewBuilder()
	for _, v := range []int32{5, 1, 5, 3, 1, 0} {
		b.Add(v)
	}
	require.Equal(t, Set{0, 1, 3, 5}, b.Finish())
	require.Equal(t, 4, b.Len())
}

func TestBuilderAddReportsNew(t *testing.T) {
	b := NewBuilder()
	require.True(t, b.Add(1), "first Add(1) should report new")
	require.False(t, b.Add(1), "second Add(1) should report duplicate")
	require.True(t, b.Has(1))
}

func TestSetContains(t *testing.T) {
	s := Set{1, 3, 5, 9}
	for _, v := range []int32{1, 3, 5, 9} {
		require.True(t, s.Contains(v), "Contains(%d)", v)
	}
	for _, v := range []int32{0, 2, 4, 10} {
		require.False(t, s.Contains(v), "Contains(%d)", v)
	}
}
