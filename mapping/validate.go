// Package mapping validates and parses the worker-to-device slot mapping
// string (spec §4.7) — the one piece of CLI-adjacent behavior spec.md
// calls out as in scope even though argument parsing in general is not.
package mapping

import (
	"sort"
	"strconv"
	"strings"

	"github.com/luxfi/rrrgen/rrrerr"
)

// Validate parses a comma-separated list of non-negative slot indices and
// checks it against totalWorkers/gpuWorkers. An empty string yields an
// empty, nil-error slot set (the default CPU-first/GPU-after layout).
func Validate(s string, totalWorkers, gpuWorkers int) ([]int, error) {
	if totalWorkers <= 0 {
		return nil, rrrerr.New(rrrerr.CodeInvalidConfig, "total_workers must be > 0")
	}
	if gpuWorkers > totalWorkers {
		return nil, rrrerr.New(rrrerr.CodeInvalidConfig, "gpu_workers must be <= total_workers")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	slots := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, rrrerr.Wrap(rrrerr.CodeInvalidConfig, "mapping entries must be non-negative integers", err)
		}
		if v >= totalWorkers {
			return nil, rrrerr.New(rrrerr.CodeInvalidConfig, "mapping entry out of range for total_workers")
		}
		if seen[v] {
			return nil, rrrerr.New(rrrerr.CodeInvalidConfig, "mapping entries must be distinct")
		}
		seen[v] = true
		slots = append(slots, v)
	}

	if len(slots) != gpuWorkers {
		return nil, rrrerr.New(rrrerr.CodeInvalidConfig, "mapping entry count must equal gpu_workers")
	}

	sort.Ints(slots)
	return slots, nil
}
