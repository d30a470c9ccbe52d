package worker

import "github.com/luxfi/rrrgen/rrrset"

// Worker drains claimed slot ranges from a shared Cursor into out until
// the cursor reaches theta. Implementations must never leave a claimed
// slot empty (spec §4.4 contract) and must treat a fatal error (device
// failure, MAX_SET_SIZE overflow on the host) by panicking with it — the
// generator recovers the panic at the top of each worker goroutine and
// converts it into a process abort (spec §7).
type Worker interface {
	SvcLoop(cursor *Cursor, out []rrrset.Set, theta int32)
}

// Closer is implemented by workers that own persistent resources
// allocated at construction (GPU device-staging buffers, per spec §4.4/
// §4.5 Owns) and must release them at generator shutdown. CPUWorker has
// nothing to release and does not implement it.
type Closer interface {
	Close()
}
