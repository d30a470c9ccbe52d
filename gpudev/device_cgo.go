//go:build cgo

package gpudev

import (
	"encoding/binary"

	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/rngstream"
)

// Available reports whether this binary was built with a device backend
// (spec §4.7: the generator refuses any GPU worker mapping when false).
func Available() bool { return true }

// NewMirror uploads g's CSR arrays to the device and mirrors them back
// into host-resident slices that the per-lane walk helpers read from.
// A real fused kernel would keep the arrays device-resident for the
// whole session; this round-trip exercises the real upload/eval path for
// the graph arrays, the only data in this repo that passes through the
// device, and the Mirror keeps only the read-back host copies (spec
// §1: this generator doesn't own kernel authorship, only the scheduling
// around it). The per-batch mask and predecessor data do not make this
// trip — see LTBatch and ICWalk.
func NewMirror(g *graph.Graph) (*Mirror, error) {
	indices := uploadInt32(g.Indices(), []int{len(g.Indices())})
	edges := uploadInt32(g.EdgesRaw(), []int{len(g.EdgesRaw())})
	weights := uploadFloat64(g.Weights(), []int{len(g.Weights())})

	return &Mirror{
		n:       g.N(),
		indices: downloadInt32(indices),
		edges:   downloadInt32(edges),
		weights: downloadFloat64(weights),
	}, nil
}

// closeDevice releases m's device resources. mlx arrays are reclaimed by
// the Go garbage collector once unreferenced; there is nothing to
// release up front here.
func closeDevice(m *Mirror) {}

// LTBatch launches one GPU-LT kernel over roots, one device lane per
// root (spec §4.1, §4.4: batch claim == num_threads == GPULTThreads, so
// a full claim maps one-to-one onto the launch width). The root list is
// staged through sess's persistent pinned host buffer before the walk,
// matching the teacher's own pinned-copy-then-launch pattern for batched
// device work — sess is allocated once at worker construction (spec
// §4.4 Owns) and reused across every batch, not reallocated per call.
//
// This repo doesn't author an on-device LT kernel (spec §1 scopes kernel
// authorship out), so the mask rows themselves are computed in plain Go
// by ltMaskRow rather than uploaded to and evaluated on an mlx.Array —
// round-tripping the finished rows through the device with no array op
// in between would exercise mlx's API without it doing any work.
func LTBatch(sess *LTSession, m *Mirror, roots []int32, rng *DeviceRNGState) (LTBatchResult, error) {
	n := len(roots)

	staged := sess.pinned.bytes()[:n*4]
	for i, r := range roots {
		binary.LittleEndian.PutUint32(staged[i*4:], uint32(r))
	}

	rows := make([][MaskWords]int32, n)
	for i := 0; i < n; i++ {
		r := int32(binary.LittleEndian.Uint32(staged[i*4:]))
		rows[i] = ltMaskRow(m, r, rng.Lane(i))
	}

	return LTBatchResult{Rows: rows}, nil
}

// ICWalk runs one GPU-IC reverse-BFS traversal from root on a single
// device lane, writing into sess's persistent predecessor buffer (spec
// §4.2, §4.5, Owns: "a host predecessor buffer of length N", allocated
// once at worker construction). Unlike LTBatch, IC walks aren't fused
// into one launch per batch claim — each walk can visit arbitrarily many
// vertices, so claim size stays small (32) regardless of device width.
// As with LTBatch, the traversal is plain host Go rather than an mlx
// array op, so the predecessor array is never uploaded to the device.
func ICWalk(sess *ICSession, m *Mirror, root int32, lane *rngstream.Stream) ([]int32, error) {
	return icPredecessors(m, root, lane, sess.pred), nil
}
