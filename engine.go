package malbolge_gen

import (
	"context"
	"sync"
)

// EngineResult pairs a target with the outcome of its generation run.
type EngineResult struct {
	Index  int
	Target string
	Result *GenerationResult
	Err    error
}

// GenerationEngine fans independent targets out over a fixed worker pool.
// Workers share nothing but the immutable base configuration: each target
// gets its own generator seeded with the base seed plus the target's index,
// so a batch is as deterministic as a single run regardless of worker count
// or scheduling.
type GenerationEngine struct {
	Workers uint
	Config  *GeneratorConfig
}

func NewGenerationEngine(config *GeneratorConfig, workers uint) *GenerationEngine {
	if workers == 0 {
		workers = DefaultEngineWorkers
	}
	if config == nil {
		config = DefaultGeneratorConfig()
	}
	return &GenerationEngine{
		Workers: workers,
		Config:  config,
	}
}

// Run generates a program for every target and returns results in target
// order. Cancelling the context stops in-flight runs; their slots report the
// context error.
func (ge *GenerationEngine) Run(ctx context.Context, targets []string) []*EngineResult {
	results := make([]*EngineResult, len(targets))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := uint(0); w < ge.Workers; w++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			for i := range indexes {
				config := ge.Config.Clone()
				config.RandomSeed = ge.Config.RandomSeed + int64(i)
				generator := NewGenerator(config)
				result, err := generator.GenerateForString(ctx, targets[i])
				if err != nil {
					logger.WithError(err).Warnf("worker %d failed target %d", id, i)
				} else if DEBUG {
					logger.Debugf("worker %d finished target %d", id, i)
				}
				results[i] = &EngineResult{Index: i, Target: targets[i], Result: result, Err: err}
			}
		}(w)
	}

FEED:
	for i := range targets {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break FEED
		}
	}
	close(indexes)
	wg.Wait()

	for i, r := range results {
		if r == nil {
			results[i] = &EngineResult{Index: i, Target: targets[i], Err: ctx.Err()}
		}
	}
	return results
}
