package crono

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// BindingEngine spends a wall-clock budget on N concurrent sampling workers
// and combines their accumulators into one BindingFactor.
type BindingEngine struct {
	sampler *Sampler
	workers int
}

// NewBindingEngine creates an engine. workers <= 0 means DetectParallelism.
func NewBindingEngine(sampler *Sampler, workers int) *BindingEngine {
	if workers <= 0 {
		workers = DetectParallelism()
	}
	return &BindingEngine{sampler: sampler, workers: workers}
}

// Workers is the size of the worker group.
func (e *BindingEngine) Workers() int { return e.workers }

// Factor blocks for roughly d and returns the combined factor. It returns 0
// without starting any worker when d <= 0. There is no way to abort a run.
func (e *BindingEngine) Factor(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	results := make([]uint64, e.workers)
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range results {
		g.Go(func() error {
			results[i] = e.work(i, d)
			return nil
		})
	}
	_ = g.Wait()
	return combineFactors(results)
}

// work multiplies fresh samples into a private accumulator until d elapses.
func (e *BindingEngine) work(id int, d time.Duration) uint64 {
	start := time.Now()
	acc := uint64(1)
	iterations := 0
	for time.Since(start) < d {
		sample := e.sampler.RAMFingerprint() ^ e.sampler.CacheNoise()
		acc *= sample | 1
		runtime.Gosched()
		acc %= BindingModulus
		iterations++
	}
	klog.V(2).Infof("binding worker %d: %d iterations in %s", id, iterations, time.Since(start))
	return acc
}

// combineFactors folds worker results in ascending index order.
func combineFactors(results []uint64) uint64 {
	combined := uint64(1)
	for _, r := range results {
		combined *= r | 1
		combined %= BindingModulus
	}
	return combined
}
