// Package graph holds the compressed-sparse-row (CSR) representation the
// generator walks. Loading a graph from disk and building a CSR image of
// it are external collaborators of this repo (see the root package's
// documentation); this package only provides the in-memory type and a
// builder a caller can use to hand the generator a *Graph.
package graph

import "sort"

// Edge is a single weighted directed edge used to build a Graph.
type Edge struct {
	Src, Dst int32
	Weight   float64
}

// Graph is an immutable CSR-encoded directed graph. For N vertices,
// indices has length N+1 and edges/weights have length indices[N].
// Vertex id N itself is reserved as the out-of-range sentinel used by the
// device mask/predecessor buffers (see gpudev).
type Graph struct {
	n       int32
	indices []int32
	edges   []int32
	weights []float64
}

// New builds a CSR graph over n vertices (ids 0..n-1) from an edge list.
// Edges need not be pre-sorted; within each source vertex's adjacency the
// resulting neighbor order follows the order edges were supplied in for
// that source (CSR order, as spec'd for the LT neighbor scan).
func New(n int32, edges []Edge) *Graph {
	if n <= 0 {
		panic("graph: n must be positive")
	}

	counts := make([]int32, n+1)
	for _, e := range edges {
		counts[e.Src]++
	}

	indices := make([]int32, n+1)
	for v := int32(0); v < n; v++ {
		indices[v+1] = indices[v] + counts[v]
	}

	cursor := make([]int32, n)
	copy(cursor, indices[:n])

	dst := make([]int32, len(edges))
	w := make([]float64, len(edges))
	// Stable-sort by source so each source's edges land contiguously while
	// preserving the caller's relative order within a source.
	ordered := make([]Edge, len(edges))
	copy(ordered, edges)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Src < ordered[j].Src })

	for _, e := range ordered {
		pos := cursor[e.Src]
		dst[pos] = e.Dst
		w[pos] = e.Weight
		cursor[e.Src]++
	}

	return &Graph{n: n, indices: indices, edges: dst, weights: w}
}

// N returns the number of vertices. Valid vertex ids are 0..N()-1; N()
// itself is the out-of-range sentinel.
func (g *Graph) N() int32 { return g.n }

// NumEdges returns the total edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Neighbors returns the out-edges of v in CSR order: destination vertex
// ids and their parallel per-edge weights.
func (g *Graph) Neighbors(v int32) ([]int32, []float64) {
	start, end := g.indices[v], g.indices[v+1]
	return g.edges[start:end], g.weights[start:end]
}

// OutDegree returns the number of out-edges of v.
func (g *Graph) OutDegree(v int32) int32 {
	return g.indices[v+1] - g.indices[v]
}

// Indices, EdgesRaw and Weights expose the raw CSR arrays, primarily so
// the device graph mirror (gpudev.NewMirror) can upload them.
func (g *Graph) Indices() []int32   { return g.indices }
func (g *Graph) EdgesRaw() []int32  { return g.edges }
func (g *Graph) Weights() []float64 { return g.weights }
