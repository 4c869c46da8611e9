package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same sandbox setup across many seeds in
// parallel, one private Simulation per goroutine. Useful for
// answering "does the energy always decay?" questions that a single
// seed can't.
type Ensemble struct {
	cfg       Config
	rc        RunConfig
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

// NewEnsemble builds an ensemble of numRuns runs seeded
// seedStart, seedStart+1, ... The metrics factory, if non-nil, is
// invoked per run so goroutines never share metric state.
func NewEnsemble(cfg Config, rc RunConfig, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{
		cfg:       cfg,
		rc:        rc,
		metrics:   metrics,
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

// Run executes all runs concurrently and returns their results in
// seed order. The first run error, if any, is returned after every
// goroutine has finished.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.Seed = e.seedStart + int64(idx)

			s := New(cfg)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, e.rc)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
