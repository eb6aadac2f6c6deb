// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/narray/internal/backend/cpu"
	"github.com/born-ml/narray/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend runs tiled copies and matrix products on a fixed-size pool
// of goroutines and selects the scalar or unrolled kernel strategy.
type Backend = internalcpu.CPUBackend

// Config holds the CPU backend settings.
type Config = internalcpu.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/narray/backend/cpu"
//	    "github.com/born-ml/narray/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.MustShape(2, 3), backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend from cfg. Zero fields take defaults.
//
// Example:
//
//	backend, err := cpu.NewWithConfig(cpu.Config{Threads: 4, Vectorized: true})
func NewWithConfig(cfg Config) (*Backend, error) {
	return internalcpu.NewWithConfig(cfg)
}
