// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided n-dimensional arrays over flat storage.
//
// # Overview
//
// A tensor is a typed view: a StrideLayout (shape, offset, strides) over a
// Storage buffer. Views share storage, so transposes, permutations, narrowed
// sub-ranges and reshapes of dense data never copy.
//
//   - Shape: immutable dimension list with cached C and F strides
//   - StrideLayout: offset and per-axis strides mapping an index to a position
//   - Loop: scan segments of uniform step covering a layout exactly once
//   - Tensor[T, B]: typed tensor bound to a Backend
//   - Statistics: mean and variance with and without NaN elements
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
//
//	    x, _ := tensor.Seq[float64](0, 1, 6, backend)
//	    m, _ := x.Reshape(tensor.MustShape(2, 3), tensor.C) // view
//	    t := m.T()                                          // view, F ordered
//	    c, _ := t.Copy(tensor.C)                            // dense copy
//	    s, _ := c.Stats()
//	    fmt.Println(s.Mean(), s.Variance())
//	}
//
// # Supported Data Types
//
// The DType constraint admits:
//   - uint8 (Byte)
//   - int32 (Int)
//   - float32 (Float)
//   - float64 (Double)
//
// # Orders
//
// C is row-major, F is column-major and S is "whatever the storage is":
// operations that accept S pick the fastest order for the layout at hand.
//
// # Errors
//
// Fallible operations return errors wrapping the package sentinels
// (ErrInvalidShape, ErrShapeSizeMismatch, ...); match them with errors.Is.
// Index accessors such as Get panic on out-of-range indices like slices do.
package tensor
