// Package worker implements the two worker concretions that drain the
// generator's shared output vector: CPUWorker, running the host diffusion
// kernels, and the GPU-LT/GPU-IC workers, running the batched and
// per-walk device kernels (spec §4.3, §4.4, §4.5). All three share one
// public surface — SvcLoop over a Cursor — so the generator can treat
// them interchangeably (spec §9 "polymorphism without inheritance
// trees").
package worker

import "sync/atomic"

// Cursor is the single shared atomic position every worker claims
// contiguous output-slot ranges from (spec §3: "sole shared mutable
// state between workers"). There are no per-worker queues and no other
// form of work stealing.
type Cursor struct {
	pos atomic.Int64
}

// Claim atomically reserves up to n contiguous slots, clamped to theta.
// ok is false once the cursor has already reached theta; a final partial
// claim returns the remaining slots with ok still true.
func (c *Cursor) Claim(n int32, theta int32) (start, end int32, ok bool) {
	s := c.pos.Add(int64(n)) - int64(n)
	if s >= int64(theta) {
		return 0, 0, false
	}
	e := s + int64(n)
	if e > int64(theta) {
		e = int64(theta)
	}
	return int32(s), int32(e), true
}
