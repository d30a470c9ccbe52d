package rrrgen

import (
	"fmt"
	"sync"

	"github.com/luxfi/rrrgen/diffusion"
	"github.com/luxfi/rrrgen/gpudev"
	"github.com/luxfi/rrrgen/graph"
	"github.com/luxfi/rrrgen/logx"
	"github.com/luxfi/rrrgen/profiling"
	"github.com/luxfi/rrrgen/rngstream"
	"github.com/luxfi/rrrgen/rrrerr"
	"github.com/luxfi/rrrgen/rrrset"
	"github.com/luxfi/rrrgen/worker"
)

// Generator owns one session's worker pool, shared cursor and device
// mirror (spec §4.6). Construct with New, run as many Generate calls as
// needed, then Destroy.
type Generator struct {
	g       *graph.Graph
	cfg     Config
	log     logx.Logger
	mirror  *gpudev.Mirror
	workers []worker.Worker
	stats   *profiling.Counters

	// exit is called with a non-zero status when a worker panics with a
	// fatal error (spec §7). Overridable so tests can observe the abort
	// without actually terminating the process.
	exit func(int)
}

// New builds a Generator's full worker pool against g, per spec §4.6:
// resolve the GPU mapping, mirror the graph to the device if any GPU
// worker is requested, split the master RNG into disjoint per-worker and
// per-device-thread streams, then construct one worker per slot.
func New(g *graph.Graph, cfg Config, log logx.Logger) (*Generator, error) {
	if log == nil {
		log = logx.Default()
	}

	gpuSlots, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	total := cfg.NumCPUWorkers + cfg.NumGPUWorkers
	if total <= 0 {
		return nil, rrrerr.New(rrrerr.CodeInvalidConfig, "at least one worker is required")
	}

	isGPU := resolveLayout(total, cfg.NumGPUWorkers, gpuSlots)

	var mirror *gpudev.Mirror
	if cfg.NumGPUWorkers > 0 {
		if !gpudev.Available() {
			return nil, rrrerr.Fatal(rrrerr.CodeDeviceFailure, "GPU workers requested but no device backend is compiled in")
		}
		mirror, err = gpudev.NewMirror(g)
		if err != nil {
			return nil, rrrerr.WrapFatal(rrrerr.CodeDeviceFailure, "device mirror construction failed", err)
		}
		log.Info("device mirror constructed", "vertices", g.N())
	}

	threadsPerGPU := gpudev.ThreadsPerWorker(cfg.Model)
	totalStreams := cfg.NumCPUWorkers + cfg.NumGPUWorkers*(threadsPerGPU+1)
	master := rngstream.NewMaster(cfg.Seed)

	stats := profiling.NewCounters(total)
	workers := make([]worker.Worker, total)

	cpuOrdinal, gpuOrdinal := 0, 0
	for slot := 0; slot < total; slot++ {
		if isGPU[slot] {
			hostStream := master.Split(totalStreams, cfg.NumCPUWorkers+gpuOrdinal)
			deviceStart := cfg.NumCPUWorkers + cfg.NumGPUWorkers + gpuOrdinal*threadsPerGPU
			device := gpudev.NewDeviceRNGState(master, totalStreams, deviceStart, threadsPerGPU)
			workers[slot] = newGPUWorker(cfg.Model, slot, mirror, g, device, hostStream, stats)
			gpuOrdinal++
		} else {
			workers[slot] = &worker.CPUWorker{
				ID:     slot,
				G:      g,
				Model:  cfg.Model,
				Stream: master.Split(totalStreams, cpuOrdinal),
				Stats:  stats,
			}
			cpuOrdinal++
		}
	}

	log.Info("generator constructed",
		"cpu_workers", cfg.NumCPUWorkers, "gpu_workers", cfg.NumGPUWorkers, "model", cfg.Model.String())

	return &Generator{g: g, cfg: cfg, log: log, mirror: mirror, workers: workers, stats: stats, exit: defaultExit}, nil
}

// resolveLayout turns the validated GPU slot list into a per-worker-slot
// flag. An empty gpuSlots with NumGPUWorkers > 0 means the mapping string
// was empty and the default layout applies: CPU workers first, GPU
// workers after (spec §4.7).
func resolveLayout(total, numGPU int, gpuSlots []int) []bool {
	isGPU := make([]bool, total)
	if len(gpuSlots) == 0 && numGPU > 0 {
		for slot := total - numGPU; slot < total; slot++ {
			isGPU[slot] = true
		}
		return isGPU
	}
	for _, slot := range gpuSlots {
		isGPU[slot] = true
	}
	return isGPU
}

func newGPUWorker(model diffusion.Model, slot int, mirror *gpudev.Mirror, g *graph.Graph, device *gpudev.DeviceRNGState, host *rngstream.Stream, stats *profiling.Counters) worker.Worker {
	if model == diffusion.IC {
		return worker.NewGPUICWorker(slot, mirror, g, device, host, stats)
	}
	return worker.NewGPULTWorker(slot, mirror, g, device, host, stats)
}

// Generate produces theta independent RRR sets, fanning out one
// goroutine per worker over a shared cursor and joining before returning
// (spec §4.6). A fatal error raised by any worker aborts the process via
// Generator.exit after logging it — no partial result is returned.
func (gn *Generator) Generate(theta int32) []rrrset.Set {
	out := make([]rrrset.Set, theta)
	var cursor worker.Cursor
	var wg sync.WaitGroup
	fatal := make(chan error, len(gn.workers))

	wg.Add(len(gn.workers))
	for _, w := range gn.workers {
		w := w
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					if err, ok := r.(error); ok {
						fatal <- err
					} else {
						fatal <- fmt.Errorf("%v", r)
					}
				}
			}()
			w.SvcLoop(&cursor, out, theta)
		}()
	}
	wg.Wait()
	close(fatal)

	if err, ok := <-fatal; ok {
		gn.log.Error("generation aborted by a fatal worker error", "error", err)
		gn.exit(1)
	}

	return out
}

// Stats returns a snapshot of every worker's profiling counters.
func (gn *Generator) Stats() []profiling.WorkerStats {
	return gn.stats.Snapshot()
}

// Destroy releases the device mirror, if one was built, and any
// per-worker persistent resources (spec §4.4/§4.5 Owns).
func (gn *Generator) Destroy() {
	for _, w := range gn.workers {
		if c, ok := w.(worker.Closer); ok {
			c.Close()
		}
	}
	gn.mirror.Close()
}
