// Package experiments runs balance batches: many independent generations
// over a seed range, fanned out across workers, folded into win-rate
// statistics.
package experiments

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"conquest/engine"
	"conquest/experiments/metrics"
)

// BatchConfig describes one balance batch. Every generation copies Sim and
// overrides only the seed, so the batch varies nothing but randomness.
type BatchConfig struct {
	Name        string
	SeedStart   int64
	Generations int
	Workers     int // zero means GOMAXPROCS
	Sim         engine.SimConfig
}

// Validate rejects unrunnable batches and delegates to the sim config.
func (c BatchConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("batch name is empty")
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generation count must be positive, got %d", c.Generations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.Workers)
	}
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("sim config: %w", err)
	}
	return nil
}

func (c BatchConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// BatchResult holds the per-generation records (ordered by seed), the
// aggregate summary, and bookkeeping about the run itself.
type BatchResult struct {
	Records []metrics.GenerationRecord
	Summary metrics.Summary
	Failed  int // seeds whose map could not seat the players
	Elapsed time.Duration
}

// RunBatch plays cfg.Generations independent generations on consecutive
// seeds. Generations share nothing mutable: each worker builds its own
// engine and RNG per seed, so results are identical at any worker count.
// Cancelling ctx stops feeding seeds; in-flight generations finish.
func RunBatch(ctx context.Context, cfg BatchConfig) (*BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch config: %w", err)
	}

	workers := cfg.workers()
	log.Info().Msgf("starting batch %q: %d generations from seed %d on %d workers",
		cfg.Name, cfg.Generations, cfg.SeedStart, workers)
	start := time.Now()

	seeds := make(chan int64, workers)
	type outcome struct {
		record metrics.GenerationRecord
		failed bool
	}
	outcomes := make(chan outcome, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				rec, err := runGeneration(cfg.Sim, seed)
				if err != nil {
					log.Warn().Msgf("seed %d skipped: %v", seed, err)
					outcomes <- outcome{failed: true}
					continue
				}
				outcomes <- outcome{record: rec}
			}
		}()
	}

	go func() {
		defer close(seeds)
		for i := 0; i < cfg.Generations; i++ {
			select {
			case seeds <- cfg.SeedStart + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := &BatchResult{}
	for out := range outcomes {
		if out.failed {
			result.Failed++
			continue
		}
		result.Records = append(result.Records, out.record)
	}

	// Workers finish out of order; seed order keeps reports reproducible.
	slices.SortFunc(result.Records, func(a, b metrics.GenerationRecord) int {
		switch {
		case a.Seed < b.Seed:
			return -1
		case a.Seed > b.Seed:
			return 1
		default:
			return 0
		}
	})
	result.Summary = metrics.Summarize(result.Records)
	result.Elapsed = time.Since(start)

	log.Info().Msgf("completed batch %q: %d generations (%d failed) in %s",
		cfg.Name, len(result.Records), result.Failed, result.Elapsed)
	return result, ctx.Err()
}

// runGeneration plays one seed and flattens it into a record.
func runGeneration(sim engine.SimConfig, seed int64) (metrics.GenerationRecord, error) {
	sim.Seed = seed
	sim.Verbose = false // thousands of runs drown in per-day logs

	start := time.Now()
	gen, err := engine.NewGeneration(sim)
	if err != nil {
		return metrics.GenerationRecord{}, err
	}
	result := gen.Run()
	return metrics.NewGenerationRecord(seed, result, time.Since(start)), nil
}
