package worker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/profiling"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrset"
)

func starIn() *graph.Graph {
	return graph.New(4, []graph.Edge{
		{Src: 1, Dst: 0, Weight: 1.0},
		{Src: 2, Dst: 0, Weight: 1.0},
		{Src: 3, Dst: 0, Weight: 1.0},
	})
}

func TestCPUWorkerFillsEveryClaimedSlot(t *testing.T) {
	g := starIn()
	stats := profiling.NewCounters(1)
	w := &CPUWorker{
		ID:     0,
		G:      g,
		Model:  diffusion.IC,
		Stream: rngstream.NewMaster(1).Split(1, 0),
		Stats:  stats,
	}

	theta := int32(10)
	out := make([]rrrset.Set, theta)
	var cursor Cursor
	w.SvcLoop(&cursor, out, theta)

	for i, set := range out {
		require.NotNil(t, set, "slot %d left empty", i)
	}
	require.EqualValues(t, theta, stats.Snapshot()[0].Walks)
}
