// Package gpudev holds the device-resident pieces of the generator: the
// CSR graph mirror (spec §3, §4.6), the GPU-LT batched mask buffer (spec
// §4.1, §4.4) and the GPU-IC predecessor buffer (spec §4.2, §4.5). The
// graph mirror is genuinely mlx-backed (upload/eval/copy-back, cgo-tagged
// files); this repo doesn't author an on-device LT/IC kernel, so the mask
// and predecessor buffers stay host-resident and are computed in plain Go
// — see the comments on LTBatch and ICWalk. The !cgo files stub the whole
// surface with ErrNoDevice so a generator asked for GPU workers without a
// device backend compiled in fails construction cleanly (spec §7, device
// failure).
package gpudev

import (
	"errors"

	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/rngstream"
)

// MaskWords is the fixed width of the GPU-LT mask buffer: device LT
// walks are truncated at this many visited vertices (spec §3, §4.1).
const MaskWords = 8

// GPULTThreads is the LT batched kernel's fixed launch width (spec §4.4):
// num_threads = 32768. It is also the GPU-LT batch claim size and the
// size of an LT worker's device RNG-state array.
const GPULTThreads = 32768

// GPUICThreads sizes a GPU-IC worker's device RNG-state array. IC walks
// are not fused on device (claim = 32, spec §4.5); this just bounds how
// many concurrently-resident traversal lanes a worker can round-robin
// over.
const GPUICThreads = 1024

// ErrNoDevice is returned by NewMirror (and would be returned by the
// batched kernels) when no device backend is compiled into this binary.
var ErrNoDevice = errors.New("gpudev: no device backend compiled in")

// ThreadsPerWorker returns the per-GPU-worker device thread count for
// model, used by the generator to size total_streams (spec §4.6 step 2).
func ThreadsPerWorker(model diffusion.Model) int {
	if model == diffusion.IC {
		return GPUICThreads
	}
	return GPULTThreads
}

// LTBatchResult is the host-visible outcome of one GPU-LT kernel launch
// (spec §4.4): Rows[i] is the mask row for roots[i]. Row decoding follows
// the device contract exactly: Rows[i][0] == N means the walk overflowed
// the mask and Rows[i][1] holds the original root for the host fallback;
// otherwise the non-sentinel words, in order, are the walk's visited set.
type LTBatchResult struct {
	Rows [][MaskWords]int32
}

// Mirror is the immutable CSR image of a Graph that the per-lane walk
// helpers read. In a cgo build it holds the host copies read back after
// uploading the graph's arrays to the device (see NewMirror); it does not
// keep device arrays itself. Built once per generation session on
// construction (when any GPU worker exists) and torn down at generator
// destruction (spec §3 Lifecycle).
type Mirror struct {
	n       int32
	indices []int32
	edges   []int32
	weights []float64
}

// N returns the vertex count; N itself is the out-of-range sentinel used
// by the mask/predecessor buffers.
func (m *Mirror) N() int32 { return m.n }

// Neighbors returns v's out-edges in CSR order, mirroring graph.Graph's
// accessor over the device-resident copy.
func (m *Mirror) Neighbors(v int32) ([]int32, []float64) {
	start, end := m.indices[v], m.indices[v+1]
	return m.edges[start:end], m.weights[start:end]
}

// Close releases the mirror's device resources. Safe to call on a nil
// Mirror (a generator with no GPU workers never builds one).
func (m *Mirror) Close() {
	if m == nil {
		return
	}
	closeDevice(m)
}

// DeviceRNGState is the per-thread RNG-state array a GPU worker's device
// lanes draw from: spec §4.6 step 2 assigns each GPU worker a contiguous
// block of threads_per_gpu_worker sub-streams from the split master RNG.
type DeviceRNGState struct {
	lanes []*rngstream.Stream
}

// NewDeviceRNGState splits count contiguous (total, index) sub-streams
// from master starting at startIndex, one per device lane.
func NewDeviceRNGState(master *rngstream.Master, total, startIndex, count int) *DeviceRNGState {
	lanes := make([]*rngstream.Stream, count)
	for i := 0; i < count; i++ {
		lanes[i] = master.Split(total, startIndex+i)
	}
	return &DeviceRNGState{lanes: lanes}
}

// Lane returns the i-th device lane's RNG stream, wrapping around if i
// exceeds the array.
func (d *DeviceRNGState) Lane(i int) *rngstream.Stream {
	return d.lanes[i%len(d.lanes)]
}

// Len returns the number of device lanes.
func (d *DeviceRNGState) Len() int { return len(d.lanes) }

// LTSession holds a GPU-LT worker's persistent host-side staging buffer
// for the roots of one batch (spec §4.4 Owns: "a host-side pinned-or-
// paged mask buffer"). Allocated once at worker construction and freed
// at worker shutdown, not per batch — there is no on-device LT kernel in
// this repo (see LTBatch), so the buffer's only job is staging roots
// through pinned memory the way a real kernel launch would need them.
type LTSession struct {
	pinned *pinnedBuffer
}

// NewLTSession allocates a staging buffer sized for maxBatch roots.
func NewLTSession(maxBatch int) *LTSession {
	return &LTSession{pinned: newPinnedBuffer(maxBatch * 4)}
}

// Close releases the session's pinned buffer. Safe on a nil session.
func (s *LTSession) Close() {
	if s == nil {
		return
	}
	s.pinned.free()
}

// ICSession holds a GPU-IC worker's persistent host predecessor buffer
// (spec §4.5 Owns: "a host predecessor buffer of length N"), reused
// across every walk instead of allocated fresh per call.
type ICSession struct {
	pred []int32
}

// NewICSession allocates a predecessor buffer sized for an n-vertex graph.
func NewICSession(n int32) *ICSession {
	return &ICSession{pred: make([]int32, n)}
}

// ltMaskRow runs one truncated LT walk from root against the mirrored
// graph, for a single device lane. It implements the same walk as
// diffusion.WalkHostLT but stops the moment the visited set would need a
// (MaskWords+1)-th distinct vertex: per spec §4.1/§9, the slot is then
// marked overflow by writing the sentinel N to word 0 and the original
// root to word 1, deferring completion to the host fallback.
func ltMaskRow(m *Mirror, root int32, lane *rngstream.Stream) [MaskWords]int32 {
	visited := make([]int32, 0, MaskWords+1)
	visited = append(visited, root)

	cur := root
	for {
		nbrs, weights := m.Neighbors(cur)
		if len(nbrs) == 0 {
			break
		}
		threshold := lane.UniformPos01()
		candidate := int32(-1)
		for i, dst := range nbrs {
			threshold -= weights[i]
			if threshold <= 0 {
				candidate = dst
				break
			}
		}
		if candidate < 0 {
			break
		}
		already := false
		for _, v := range visited {
			if v == candidate {
				already = true
				break
			}
		}
		if already {
			break
		}
		visited = append(visited, candidate)
		if len(visited) > MaskWords {
			var row [MaskWords]int32
			row[0] = m.n
			row[1] = root
			return row
		}
		cur = candidate
	}

	var row [MaskWords]int32
	for i := range row {
		row[i] = m.n
	}
	copy(row[:], visited)
	return row
}

// icPredecessors runs one reverse-BFS Independent-Cascade traversal from
// root against the mirrored graph for a single device lane, writing into
// the caller-owned pred buffer (spec §4.2 device version, reusing the
// worker's persistent ICSession buffer rather than allocating one per
// walk): pred[v] >= 0 iff v was reached via v's predecessor, else -1. The
// caller is responsible for the pred[root] = root fixup after copy-back,
// per spec.
func icPredecessors(m *Mirror, root int32, lane *rngstream.Stream, pred []int32) []int32 {
	for i := range pred {
		pred[i] = -1
	}

	frontier := []int32{root}
	for len(frontier) > 0 {
		var next []int32
		for _, cur := range frontier {
			nbrs, weights := m.Neighbors(cur)
			for i, dst := range nbrs {
				if dst == root || pred[dst] != -1 {
					continue
				}
				if lane.Uniform01() <= weights[i] {
					pred[dst] = cur
					next = append(next, dst)
				}
			}
		}
		frontier = next
	}

	return pred
}
