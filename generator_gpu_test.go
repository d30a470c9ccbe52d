//go:build cgo

package rrrgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/logx"
	"github.com/luxfi/rrrgen/worker"
)

func denseGraph(n int32, avgOutDegree int) *graph.Graph {
	edges := make([]graph.Edge, 0, int(n)*avgOutDegree)
	weight := 1.0 / float64(avgOutDegree+1)
	for v := int32(0); v < n; v++ {
		for i := 0; i < avgOutDegree; i++ {
			dst := (v + int32(i) + 1) % n
			edges = append(edges, graph.Edge{Src: v, Dst: dst, Weight: weight})
		}
	}
	return graph.New(n, edges)
}

func TestGenerateMixedCPUGPUReturnsExactTheta(t *testing.T) {
	g := denseGraph(500, 4)
	gn, err := New(g, Config{
		NumCPUWorkers: 2,
		NumGPUWorkers: 2,
		Seed:          7,
		Model:         diffusion.LT,
	}, logx.Nop{})
	require.NoError(t, err)
	defer gn.Destroy()

	theta := int32(10000)
	sets := gn.Generate(theta)
	require.Len(t, sets, int(theta))
	seen := 0
	for _, s := range sets {
		if s != nil {
			seen++
		}
	}
	require.Equal(t, int(theta), seen, "%d slots left empty", int(theta)-seen)
	for _, ws := range gn.Stats() {
		require.GreaterOrEqual(t, ws.Overflows, int64(0), "overflow counter went negative")
	}
}

func TestGenerateExplicitGPUMappingAssignsRequestedSlots(t *testing.T) {
	g := denseGraph(200, 3)
	gn, err := New(g, Config{
		NumCPUWorkers: 2,
		NumGPUWorkers: 2,
		GPUMapping:    "0,3",
		Seed:          3,
		Model:         diffusion.LT,
	}, logx.Nop{})
	require.NoError(t, err)
	defer gn.Destroy()

	wantGPU := map[int]bool{0: true, 1: false, 2: false, 3: true}
	for slot, want := range wantGPU {
		_, isGPU := gn.workers[slot].(*worker.GPULTWorker)
		require.Equal(t, want, isGPU, "slot %d", slot)
	}

	sets := gn.Generate(100)
	require.Len(t, sets, 100)
}

func TestGenerateGPULTOverflowFallbackMatchesSlotCount(t *testing.T) {
	// Longer than MaskWords, so every device walk overflows, but shorter
	// than MaxSetSize, so the host fallback walk completes.
	const n = 20
	edges := make([]graph.Edge, 0, n)
	for i := int32(0); i < n; i++ {
		edges = append(edges, graph.Edge{Src: i, Dst: (i + 1) % n, Weight: 1.0})
	}
	g := graph.New(n, edges)

	gn, err := New(g, Config{
		NumGPUWorkers: 1,
		Seed:          11,
		Model:         diffusion.LT,
	}, logx.Nop{})
	require.NoError(t, err)
	defer gn.Destroy()

	theta := int32(64)
	sets := gn.Generate(theta)

	var totalOverflow int64
	for _, ws := range gn.Stats() {
		totalOverflow += ws.Overflows
	}
	require.Equal(t, int64(theta), totalOverflow, "every walk on a %d-vertex cycle should overflow an 8-word mask", n)
	for i, s := range sets {
		require.NotNil(t, s, "slot %d left empty", i)
	}
}
