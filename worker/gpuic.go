package worker

import (
	"time"

	"github.com/luxfi/rrrgen/gpudev"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/profiling"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrerr"
	"github.com/luxfi/rrrgen/rrrset"
)

// gpuICBatchClaim matches spec §4.5: IC walks aren't fused on device, so
// the claim stays host-bound at 32.
const gpuICBatchClaim = 32

// GPUICWorker drains output slots by running one reverse-BFS traversal
// per walk through gpudev.ICWalk and reading the predecessor array it
// fills in the worker's host-resident session buffer (spec §4.2, §4.5).
type GPUICWorker struct {
	ID      int
	Mirror  *gpudev.Mirror
	G       *graph.Graph
	Device  *gpudev.DeviceRNGState
	Host    *rngstream.Stream // draws roots
	Stats   *profiling.Counters
	Session *gpudev.ICSession // persistent predecessor buffer, owned for this worker's lifetime
}

// NewGPUICWorker constructs a GPU-IC worker and allocates its persistent
// session resources (spec §4.5 Owns) once, up front.
func NewGPUICWorker(id int, mirror *gpudev.Mirror, g *graph.Graph, device *gpudev.DeviceRNGState, host *rngstream.Stream, stats *profiling.Counters) *GPUICWorker {
	return &GPUICWorker{
		ID:      id,
		Mirror:  mirror,
		G:       g,
		Device:  device,
		Host:    host,
		Stats:   stats,
		Session: gpudev.NewICSession(g.N()),
	}
}

// SvcLoop implements Worker.
func (w *GPUICWorker) SvcLoop(cursor *Cursor, out []rrrset.Set, theta int32) {
	for {
		start, end, ok := cursor.Claim(gpuICBatchClaim, theta)
		if !ok {
			return
		}

		for i, slot := 0, start; slot < end; i, slot = i+1, slot+1 {
			root := w.Host.IntN(w.G.N())

			t0 := time.Now()
			pred, err := gpudev.ICWalk(w.Session, w.Mirror, root, w.Device.Lane(i))
			w.Stats.RecordPhase(w.ID, profiling.PhaseWalk, time.Since(t0).Nanoseconds())
			if err != nil {
				panic(rrrerr.WrapFatal(rrrerr.CodeDeviceFailure, "GPU-IC walk launch failed", err))
			}

			pred[root] = root
			out[slot] = predecessorsToSet(pred)
		}
		w.Stats.AddWalks(w.ID, end-start)
	}
}

// predecessorsToSet builds the sorted RRR set of every index reached by
// the reverse-BFS solver, per spec §4.2: all indices with pred != -1.
func predecessorsToSet(pred []int32) rrrset.Set {
	b := rrrset.NewBuilder()
	for v, p := range pred {
		if p != -1 {
			b.Add(int32(v))
		}
	}
	return b.Finish()
}
