// Package profiling implements the per-worker counters spec §2/§9 call
// for: walks completed, overflow/exceedance count, and time spent per
// phase. Every worker owns one slot in the Counters table and only ever
// writes its own slot, so no locking is needed beyond the atomics already
// required for cross-goroutine visibility at Snapshot time.
package profiling

import "sync/atomic"

// Phase identifies one stage of a worker's service-loop iteration.
type Phase int

const (
	PhaseWalk Phase = iota
	PhaseBuild
	numPhases
)

type workerCounters struct {
	walks     atomic.Int64
	overflows atomic.Int64
	nsByPhase [numPhases]atomic.Int64
}

// Counters is the fixed-size table of per-worker counters for one
// generator instance, indexed by worker slot id.
type Counters struct {
	slots []workerCounters
}

// NewCounters allocates a table with one slot per worker.
func NewCounters(numWorkers int) *Counters {
	return &Counters{slots: make([]workerCounters, numWorkers)}
}

// AddWalks records n completed walks for worker id.
func (c *Counters) AddWalks(id int, n int32) {
	c.slots[id].walks.Add(int64(n))
}

// RecordOverflow records one GPU-LT overflow/exceedance for worker id.
func (c *Counters) RecordOverflow(id int) {
	c.slots[id].overflows.Add(1)
}

// RecordPhase adds d nanoseconds to the named phase for worker id.
func (c *Counters) RecordPhase(id int, phase Phase, nanos int64) {
	c.slots[id].nsByPhase[phase].Add(nanos)
}

// WorkerStats is a point-in-time snapshot of one worker's counters.
type WorkerStats struct {
	Walks      int64
	Overflows  int64
	WalkNanos  int64
	BuildNanos int64
}

// Snapshot reads every worker's counters. Safe to call only after
// Generate has returned (join already happened, so every worker's writes
// are visible without further synchronization), or concurrently while
// workers are running if an approximate, possibly-torn-per-field view is
// acceptable.
func (c *Counters) Snapshot() []WorkerStats {
	out := make([]WorkerStats, len(c.slots))
	for i := range c.slots {
		out[i] = WorkerStats{
			Walks:      c.slots[i].walks.Load(),
			Overflows:  c.slots[i].overflows.Load(),
			WalkNanos:  c.slots[i].nsByPhase[PhaseWalk].Load(),
			BuildNanos: c.slots[i].nsByPhase[PhaseBuild].Load(),
		}
	}
	return out
}

// TotalOverflows sums the overflow counter across every worker — used to
// check spec §8 property 8 (overflow fallbacks + successful device walks
// == GPU-LT slots claimed).
func (c *Counters) TotalOverflows() int64 {
	var total int64
	for i := range c.slots {
		total += c.slots[i].overflows.Load()
	}
	return total
}
