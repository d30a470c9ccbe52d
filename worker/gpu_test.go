//go:build cgo

package worker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/rrrgen/gpudev"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/profiling"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrset"
)

func linearChain(n int32) *graph.Graph {
	edges := make([]graph.Edge, 0, n-1)
	for i := int32(0); i < n-1; i++ {
		edges = append(edges, graph.Edge{Src: i, Dst: i + 1, Weight: 1.0})
	}
	return graph.New(n, edges)
}

func TestGPULTWorkerFillsEveryClaimedSlot(t *testing.T) {
	g := linearChain(5)
	m, err := gpudev.NewMirror(g)
	require.NoError(t, err)

	master := rngstream.NewMaster(3)
	w := NewGPULTWorker(0, m, g,
		gpudev.NewDeviceRNGState(master, gpuLTBatchClaim+1, 1, gpuLTBatchClaim),
		master.Split(gpuLTBatchClaim+1, 0),
		profiling.NewCounters(1))
	defer w.Close()

	theta := int32(gpuLTBatchClaim + 17)
	out := make([]rrrset.Set, theta)
	var cursor Cursor
	w.SvcLoop(&cursor, out, theta)

	for i, set := range out {
		require.NotNil(t, set, "slot %d left empty", i)
	}
}

func TestGPULTWorkerOverflowFallsBackToHostWalk(t *testing.T) {
	g := linearChain(gpudev.MaskWords + 5)
	m, err := gpudev.NewMirror(g)
	require.NoError(t, err)

	master := rngstream.NewMaster(7)
	w := NewGPULTWorker(0, m, g,
		gpudev.NewDeviceRNGState(master, gpuLTBatchClaim+1, 1, gpuLTBatchClaim),
		master.Split(gpuLTBatchClaim+1, 0),
		profiling.NewCounters(1))
	defer w.Close()

	theta := int32(gpuLTBatchClaim)
	out := make([]rrrset.Set, theta)
	var cursor Cursor
	w.SvcLoop(&cursor, out, theta)

	require.NotZero(t, w.Stats.TotalOverflows(), "a path longer than MaskWords should force at least one overflow")
	for i, set := range out {
		require.NotNil(t, set, "slot %d left empty", i)
		require.Equal(t, g.N()-1, set[len(set)-1], "slot %d: walk on a linear chain should always reach the last vertex, got %v", i, set)
	}
}

func TestGPUICWorkerSetsAlwaysContainRoot(t *testing.T) {
	g := starIn()
	m, err := gpudev.NewMirror(g)
	require.NoError(t, err)

	master := rngstream.NewMaster(11)
	w := NewGPUICWorker(0, m, g,
		gpudev.NewDeviceRNGState(master, gpuICBatchClaim+1, 1, gpuICBatchClaim),
		master.Split(gpuICBatchClaim+1, 0),
		profiling.NewCounters(1))

	theta := int32(gpuICBatchClaim)
	out := make([]rrrset.Set, theta)
	var cursor Cursor
	w.SvcLoop(&cursor, out, theta)

	for i, set := range out {
		require.NotNil(t, set, "slot %d left empty", i)
		require.NotEmpty(t, set, "slot %d: IC set must include its root", i)
	}
}
