package worker

import (
	"time"

	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/gpudev"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/profiling"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrerr"
	"github.com/luxfi/rrrgen/rrrset"
)

// gpuLTBatchClaim matches the LT kernel's fixed launch width (spec
// §4.4): one walk per device thread, num_threads = 32768.
const gpuLTBatchClaim = gpudev.GPULTThreads

// GPULTWorker drains output slots with the batched GPU-LT kernel,
// falling back to the host LT walk for any lane whose mask overflowed.
type GPULTWorker struct {
	ID      int
	Mirror  *gpudev.Mirror
	G       *graph.Graph // host CSR, needed for the overflow fallback walk
	Device  *gpudev.DeviceRNGState
	Host    *rngstream.Stream // draws roots and runs fallback walks
	Stats   *profiling.Counters
	Session *gpudev.LTSession // persistent staging buffer, owned for this worker's lifetime
}

// NewGPULTWorker constructs a GPU-LT worker and allocates its persistent
// session resources (spec §4.4 Owns) once, up front.
func NewGPULTWorker(id int, mirror *gpudev.Mirror, g *graph.Graph, device *gpudev.DeviceRNGState, host *rngstream.Stream, stats *profiling.Counters) *GPULTWorker {
	return &GPULTWorker{
		ID:      id,
		Mirror:  mirror,
		G:       g,
		Device:  device,
		Host:    host,
		Stats:   stats,
		Session: gpudev.NewLTSession(gpuLTBatchClaim),
	}
}

// Close releases the worker's persistent session resources.
func (w *GPULTWorker) Close() {
	w.Session.Close()
}

// SvcLoop implements Worker.
func (w *GPULTWorker) SvcLoop(cursor *Cursor, out []rrrset.Set, theta int32) {
	for {
		start, end, ok := cursor.Claim(gpuLTBatchClaim, theta)
		if !ok {
			return
		}
		n := int(end - start)

		roots := make([]int32, n)
		for i := range roots {
			roots[i] = w.Host.IntN(w.G.N())
		}

		t0 := time.Now()
		result, err := gpudev.LTBatch(w.Session, w.Mirror, roots, w.Device)
		w.Stats.RecordPhase(w.ID, profiling.PhaseWalk, time.Since(t0).Nanoseconds())
		if err != nil {
			panic(rrrerr.WrapFatal(rrrerr.CodeDeviceFailure, "GPU-LT batch launch failed", err))
		}

		tc := time.Now()
		for i, slot := 0, start; i < n; i, slot = i+1, slot+1 {
			row := result.Rows[i]
			if row[0] == w.Mirror.N() {
				w.Stats.RecordOverflow(w.ID)
				recoveredRoot := row[1]
				set, werr := diffusion.WalkHostLT(w.G, recoveredRoot, w.Host)
				if werr != nil {
					panic(werr)
				}
				out[slot] = set
				continue
			}
			out[slot] = maskRowToSet(row, w.Mirror.N())
		}
		w.Stats.RecordPhase(w.ID, profiling.PhaseBuild, time.Since(tc).Nanoseconds())
		w.Stats.AddWalks(w.ID, int32(n))
	}
}

// maskRowToSet decodes a successful (non-overflow) mask row into a
// sorted RRR set: non-sentinel words in order, per spec §4.4 step 3.
func maskRowToSet(row [gpudev.MaskWords]int32, sentinel int32) rrrset.Set {
	b := rrrset.NewBuilder()
	for _, v := range row {
		if v == sentinel {
			break
		}
		b.Add(v)
	}
	return b.Finish()
}
