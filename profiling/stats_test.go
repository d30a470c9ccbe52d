package profiling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersPerWorkerIsolation(t *testing.T) {
	c := NewCounters(2)
	c.AddWalks(0, 10)
	c.AddWalks(1, 5)
	c.RecordOverflow(0)
	c.RecordPhase(0, PhaseWalk, 1000)
	c.RecordPhase(1, PhaseBuild, 500)

	snap := c.Snapshot()
	require.EqualValues(t, 10, snap[0].Walks)
	require.EqualValues(t, 1, snap[0].Overflows)
	require.EqualValues(t, 1000, snap[0].WalkNanos)

	require.EqualValues(t, 5, snap[1].Walks)
	require.Zero(t, snap[1].Overflows)
	require.EqualValues(t, 500, snap[1].BuildNanos)
}

func TestTotalOverflows(t *testing.T) {
	c := NewCounters(3)
	c.RecordOverflow(0)
	c.RecordOverflow(0)
	c.RecordOverflow(2)

	require.EqualValues(t, 3, c.TotalOverflows())
}
