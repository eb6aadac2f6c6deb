// Package parallel provides bounded parallel execution for the array engine.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines running at once.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// workers returns the effective goroutine limit.
func (c Config) workers() int {
	if !c.Enabled || c.NumWorkers < 1 {
		return 1
	}
	return c.NumWorkers
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if cfg.workers() == 1 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Run executes every task and returns when all have finished.
// At most cfg.NumWorkers tasks run at once; a single task or a disabled
// config runs on the calling goroutine.
func Run(tasks []func(), cfg Config) {
	_ = RunContext(context.Background(), tasks, cfg)
}

// RunContext is like Run but stops scheduling new tasks once ctx is done.
// Tasks already started run to completion. It returns ctx.Err() if any
// task was skipped.
func RunContext(ctx context.Context, tasks []func(), cfg Config) error {
	if len(tasks) == 0 {
		return nil
	}
	if cfg.workers() == 1 || len(tasks) == 1 {
		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			task()
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for _, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			task()
			return nil
		})
	}
	return g.Wait()
}
