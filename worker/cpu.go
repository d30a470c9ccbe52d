package worker

import (
	"time"

	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/profiling"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrset"
)

// cpuBatchClaim is the CPU worker's internal batch claim size (spec
// §4.3): small, to keep end-of-run idle time low.
const cpuBatchClaim = 32

// CPUWorker drains output slots with the host diffusion kernel.
type CPUWorker struct {
	ID     int
	G      *graph.Graph
	Model  diffusion.Model
	Stream *rngstream.Stream
	Stats  *profiling.Counters
}

// SvcLoop implements Worker.
func (w *CPUWorker) SvcLoop(cursor *Cursor, out []rrrset.Set, theta int32) {
	for {
		start, end, ok := cursor.Claim(cpuBatchClaim, theta)
		if !ok {
			return
		}

		t0 := time.Now()
		for slot := start; slot < end; slot++ {
			root := w.Stream.IntN(w.G.N())
			set, err := diffusion.Walk(w.Model, w.G, root, w.Stream)
			if err != nil {
				panic(err)
			}
			out[slot] = set
		}
		w.Stats.RecordPhase(w.ID, profiling.PhaseWalk, time.Since(t0).Nanoseconds())
		w.Stats.AddWalks(w.ID, end-start)
	}
}
