package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPreservesAdjacencyOrder(t *testing.T) {
	g := New(5, []Edge{
		{Src: 0, Dst: 1, Weight: 1.0},
		{Src: 1, Dst: 2, Weight: 1.0},
		{Src: 0, Dst: 2, Weight: 0.5},
		{Src: 2, Dst: 3, Weight: 1.0},
		{Src: 3, Dst: 4, Weight: 1.0},
	})

	require.EqualValues(t, 5, g.N())
	require.Equal(t, 5, g.NumEdges())

	nbrs, w := g.Neighbors(0)
	require.Equal(t, []int32{1, 2}, nbrs, "insertion order within a source should be preserved")
	require.Equal(t, []float64{1.0, 0.5}, w)

	require.Zero(t, g.OutDegree(4))
}

func TestNewEmptyAdjacency(t *testing.T) {
	g := New(3, nil)
	for v := int32(0); v < 3; v++ {
		require.Zero(t, g.OutDegree(v), "vertex %d", v)
	}
}
