// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - A bounded worker pool fixed at construction
//   - Scalar and 4-way unrolled kernel strategies
//   - Cache-budgeted tiling for copies and matrix products
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/narray/backend/cpu"
//	    "github.com/born-ml/narray/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.Seq[float32](0, 1, 12, backend)
//	    m, _ := x.Reshape(tensor.MustShape(3, 4), tensor.C)
//	    p, _ := m.Mm(m.T())
//	}
//
// # Logging
//
// The backend logs its configuration and task fan-out at debug level through
// Config.Logger, or slog.Default() when none is set.
package cpu
