//go:build !cgo

package gpudev

import (
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/rngstream"
)

// Available reports false: this binary has no cgo-backed device support
// compiled in, so the generator must refuse any GPU worker mapping
// (spec §4.7, §7 device failure).
func Available() bool { return false }

// NewMirror always fails in a pure-Go build.
func NewMirror(g *graph.Graph) (*Mirror, error) { return nil, ErrNoDevice }

func closeDevice(m *Mirror) {}

// LTBatch is unreachable in a pure-Go build (NewMirror already failed
// construction), kept so the worker package compiles against one API
// regardless of build.
func LTBatch(sess *LTSession, m *Mirror, roots []int32, rng *DeviceRNGState) (LTBatchResult, error) {
	return LTBatchResult{}, ErrNoDevice
}

// ICWalk is unreachable in a pure-Go build, kept for the same reason.
func ICWalk(sess *ICSession, m *Mirror, root int32, lane *rngstream.Stream) ([]int32, error) {
	return nil, ErrNoDevice
}

// pinnedBuffer stubs the cgo-backed staging buffer type so the
// build-tag-free LTSession in mirror.go compiles regardless of build.
// Never actually allocated: NewMirror already fails in a pure-Go build,
// so no LTSession is ever constructed against a real worker.
type pinnedBuffer struct{}

func newPinnedBuffer(size int) *pinnedBuffer { return &pinnedBuffer{} }

func (pb *pinnedBuffer) free() {}

func (pb *pinnedBuffer) bytes() []byte { return nil }
