// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/narray/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: uint8, int32, float32, float64.
type DType = tensor.DType

// DataType names the element kind of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Byte   DataType = tensor.Byte
	Int    DataType = tensor.Int
	Float  DataType = tensor.Float
	Double DataType = tensor.Double
)

// Order selects how logical indices are scanned.
type Order = tensor.Order

// Order constants.
const (
	C Order = tensor.C // Row-major.
	F Order = tensor.F // Column-major.
	S Order = tensor.S // Storage order.
)

// MaxSize is the largest element count a Shape may describe.
const MaxSize = tensor.MaxSize

// Shape is an immutable list of positive dimensions.
type Shape = tensor.Shape

// Layout maps logical indices to storage positions.
type Layout = tensor.Layout

// StrideLayout is the strided Layout: a shape plus an offset and per-axis strides.
type StrideLayout = tensor.StrideLayout

// Loop is the scan plan of a layout: equal-length segments of uniform step.
type Loop = tensor.Loop

// Storage is a flat typed buffer shared by tensor views.
type Storage[T DType] = tensor.Storage[T]

// Statistics holds mean and variance of a floating point tensor.
type Statistics = tensor.Statistics

// UnaryOp names an element-wise function applied by Tensor.Apply.
type UnaryOp = tensor.UnaryOp

// Unary operations.
const (
	Abs     = tensor.Abs
	Neg     = tensor.Neg
	Sqr     = tensor.Sqr
	Sqrt    = tensor.Sqrt
	Exp     = tensor.Exp
	Log     = tensor.Log
	Log1p   = tensor.Log1p
	Sin     = tensor.Sin
	Cos     = tensor.Cos
	Tan     = tensor.Tan
	Tanh    = tensor.Tanh
	Sigmoid = tensor.Sigmoid
)

// Tensor is a generic type-safe tensor.
//
// T is the element type (uint8, int32, float32, float64).
// B is the backend the tensor's bulk operations run on.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.MustShape(2, 3), backend)
//	y := x.T()          // view
//	z, _ := y.Copy(tensor.C)
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Errors returned by tensor operations.
var (
	ErrInvalidShape         = tensor.ErrInvalidShape
	ErrUnsupportedOrder     = tensor.ErrUnsupportedOrder
	ErrUnsupportedLayout    = tensor.ErrUnsupportedLayout
	ErrShapeSizeMismatch    = tensor.ErrShapeSizeMismatch
	ErrNonConformantShapes  = tensor.ErrNonConformantShapes
	ErrUnsupportedOperation = tensor.ErrUnsupportedOperation
	ErrAxisOutOfRange       = tensor.ErrAxisOutOfRange
)

// Shape and layout functions

// NewShape validates dims and returns the shape.
func NewShape(dims ...int) (*Shape, error) {
	return tensor.NewShape(dims...)
}

// MustShape is like NewShape but panics on error.
//
// Example:
//
//	s := tensor.MustShape(2, 3, 4)
func MustShape(dims ...int) *Shape {
	return tensor.MustShape(dims...)
}

// NewStrideLayout creates a layout from explicit strides.
func NewStrideLayout(shape *Shape, offset int, strides []int) (StrideLayout, error) {
	return tensor.NewStrideLayout(shape, offset, strides)
}

// DenseLayout creates a dense C or F layout starting at offset.
func DenseLayout(shape *Shape, offset int, order Order) (StrideLayout, error) {
	return tensor.DenseLayout(shape, offset, order)
}

// NewLoop plans a scan of l in the given order.
func NewLoop(l StrideLayout, order Order) Loop {
	return tensor.NewLoop(l, order)
}

// NewJointLoop plans one scan shared by same-shaped layouts.
func NewJointLoop(order Order, layouts ...StrideLayout) ([]Loop, error) {
	return tensor.NewJointLoop(order, layouts...)
}

// Creation functions

// Zeros creates a C-ordered tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.MustShape(2, 3), backend)
func Zeros[T DType, B Backend](shape *Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// ZerosOrder creates a zero tensor dense in order C or F.
func ZerosOrder[T DType, B Backend](shape *Shape, order Order, b B) *Tensor[T, B] {
	return tensor.ZerosOrder[T](shape, order, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float32](tensor.MustShape(2, 3), 3.14, backend)
func Full[T DType, B Backend](shape *Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	identity, _ := tensor.Eye[float32](3, backend) // 3x3 identity matrix
func Eye[T DType, B Backend](n int, b B) (*Tensor[T, B], error) {
	return tensor.Eye[T](n, b)
}

// Seq creates the rank-1 tensor start, start+step, ... of n values.
func Seq[T DType, B Backend](start, step T, n int, b B) (*Tensor[T, B], error) {
	return tensor.Seq(start, step, n, b)
}

// Rand creates a tensor with values uniform in [0, 1). A nil rng uses the
// global generator.
func Rand[T DType, B Backend](shape *Shape, rng *rand.Rand, b B) (*Tensor[T, B], error) {
	return tensor.Rand[T](shape, rng, b)
}

// Randn creates a tensor with standard normal values. A nil rng uses the
// global generator.
func Randn[T DType, B Backend](shape *Shape, rng *rand.Rand, b B) (*Tensor[T, B], error) {
	return tensor.Randn[T](shape, rng, b)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.MustShape(2, 3), backend)
func FromSlice[T DType, B Backend](data []T, shape *Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Wrap creates a view over data with explicit offset and strides.
func Wrap[T DType, B Backend](data []T, shape *Shape, offset int, strides []int, b B) (*Tensor[T, B], error) {
	return tensor.Wrap(data, shape, offset, strides, b)
}

// New binds a layout and a storage buffer into a tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Seq, or FromSlice instead.
func New[T DType, B Backend](layout StrideLayout, storage *Storage[T], b B) (*Tensor[T, B], error) {
	return tensor.New(layout, storage, b)
}

// NewStorage allocates a zeroed buffer of n elements.
func NewStorage[T DType](n int) *Storage[T] {
	return tensor.NewStorage[T](n)
}

// Conversion and statistics

// Cast converts every element of t to kind D, returning a new C-ordered tensor.
//
// Example:
//
//	i := tensor.Cast[int32](x)
func Cast[D, S DType, B Backend](t *Tensor[S, B]) *Tensor[D, B] {
	return tensor.Cast[D](t)
}

// Stats computes Statistics for a floating point tensor.
func Stats[T DType, B Backend](t *Tensor[T, B]) (Statistics, error) {
	return tensor.Stats(t)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T DType]() DataType {
	return tensor.DataTypeOf[T]()
}
