package engine

import (
	"context"
	"sync"
)

// Ensemble runs seed-varied replicates of the same configuration in
// parallel. Each replicate gets its own engine, so no state is shared for
// concurrent mutation.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, nSteps int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.Seed = e.seedStart + int64(idx)

			eng, err := New(cfg)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx], errs[idx] = eng.Simulate(ctx, nSteps)
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
