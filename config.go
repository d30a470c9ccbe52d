// Package rrrgen implements the heterogeneous CPU/GPU streaming
// generator of Reverse Reachable sets described by the repo's component
// packages: graph (CSR image), rngstream (splittable RNG), diffusion
// (host LT/IC walks), gpudev (device mirror and batched kernels), worker
// (the CPU/GPU service loops) and mapping (the worker-to-device slot
// validator). This package wires them together behind Config and
// Generator.
//
// Loading a graph from disk, parsing command-line flags and the outer
// influence-maximization loop that decides θ are all external
// collaborators — see cmd/rrrgen for a minimal CLI front-end that
// exercises this package's full lifecycle without implementing any of
// those.
package rrrgen

import (
	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/mapping"
)

// Config describes one generation session's worker layout.
type Config struct {
	// NumCPUWorkers and NumGPUWorkers size the worker pool. At least one
	// of the two must be positive.
	NumCPUWorkers int
	NumGPUWorkers int

	// GPUMapping is the raw worker-to-device slot string (spec §4.7). An
	// empty string selects the default layout: CPU workers first, GPU
	// workers after.
	GPUMapping string

	// Seed is the master RNG seed every worker and device-thread stream
	// is split from.
	Seed uint64

	// Model selects LT or IC for every worker in this session.
	Model diffusion.Model
}

// Validate checks the configuration and resolves GPUMapping into the
// sorted list of worker slot indices that must run on GPU. An empty
// GPUMapping resolves to the default layout rather than an explicit list.
func (c Config) Validate() ([]int, error) {
	total := c.NumCPUWorkers + c.NumGPUWorkers
	return mapping.Validate(c.GPUMapping, total, c.NumGPUWorkers)
}
