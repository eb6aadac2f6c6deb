// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/narray/internal/tensor"

// Backend supplies the execution resources a tensor runs on.
//
// A backend reports its worker count, kernel strategy, cache budget and the
// element count above which copies are tiled, and runs a batch of
// independent tasks to completion.
//
// Implementations:
//   - backend/cpu: bounded goroutine pool
//   - MockBackend: sequential, for tests
//
// Example:
//
//	import (
//	    "github.com/born-ml/narray/tensor"
//	    "github.com/born-ml/narray/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.MustShape(2, 3), backend)
type Backend = tensor.Backend

// MockBackend runs tasks sequentially on the calling goroutine.
// Its results are the reference parallel backends are compared against.
type MockBackend = tensor.MockBackend

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return tensor.NewMockBackend()
}
