// Package cpu implements the CPU backend: a fixed-size worker pool and the
// kernel strategy used by tensors bound to it.
package cpu

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/born-ml/narray/internal/parallel"
	"github.com/born-ml/narray/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// Config holds the CPU backend settings. Zero fields take their defaults in
// NewWithConfig.
type Config struct {
	Threads           int          // Worker count; fixed for the backend's lifetime.
	Vectorized        bool         // Use the unrolled kernel strategy.
	CacheBytes        int          // Per-task working set budget.
	ParallelThreshold int          // Element count above which copies are tiled.
	Logger            *slog.Logger // Debug diagnostics; nil means slog.Default().
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		Threads:           runtime.NumCPU(),
		Vectorized:        true,
		CacheBytes:        256 << 10,
		ParallelThreshold: 1 << 16,
	}
}

// CPUBackend runs tensor work on a bounded pool of goroutines.
type CPUBackend struct {
	cfg    Config
	pool   parallel.Config
	logger *slog.Logger
}

// New creates a new CPU backend with DefaultConfig.
func New() *CPUBackend {
	b, err := NewWithConfig(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("cpu: default config rejected: %v", err))
	}
	return b
}

// NewWithConfig creates a CPU backend from cfg. Zero fields are replaced by
// their defaults; negative values are rejected.
func NewWithConfig(cfg Config) (*CPUBackend, error) {
	if cfg.Threads < 0 || cfg.CacheBytes < 0 || cfg.ParallelThreshold < 0 {
		return nil, fmt.Errorf("cpu: negative setting in %+v", cfg)
	}
	def := DefaultConfig()
	if cfg.Threads == 0 {
		cfg.Threads = def.Threads
	}
	if cfg.CacheBytes == 0 {
		cfg.CacheBytes = def.CacheBytes
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = def.ParallelThreshold
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &CPUBackend{
		cfg: cfg,
		pool: parallel.Config{
			Enabled:    cfg.Threads > 1,
			NumWorkers: cfg.Threads,
		},
		logger: logger,
	}
	logger.Debug("cpu backend ready",
		"threads", cfg.Threads,
		"vectorized", cfg.Vectorized,
		"cacheBytes", cfg.CacheBytes,
		"parallelThreshold", cfg.ParallelThreshold)
	return b, nil
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Threads returns the worker count.
func (cpu *CPUBackend) Threads() int {
	return cpu.cfg.Threads
}

// Vectorized reports whether the unrolled kernel strategy is selected.
func (cpu *CPUBackend) Vectorized() bool {
	return cpu.cfg.Vectorized
}

// CacheBytes returns the per-task working set budget.
func (cpu *CPUBackend) CacheBytes() int {
	return cpu.cfg.CacheBytes
}

// ParallelThreshold returns the element count above which copies are tiled.
func (cpu *CPUBackend) ParallelThreshold() int {
	return cpu.cfg.ParallelThreshold
}

// Config returns the effective configuration.
func (cpu *CPUBackend) Config() Config {
	return cpu.cfg
}

// Run executes tasks on the worker pool and waits for all of them.
func (cpu *CPUBackend) Run(tasks []func()) {
	if len(tasks) > 1 {
		cpu.logger.Debug("cpu fan-out", "tasks", len(tasks), "workers", min(len(tasks), cpu.cfg.Threads))
	}
	parallel.Run(tasks, cpu.pool)
}
