package tensor

import (
	"fmt"
	"math/rand/v2"
)

// Zeros creates a C-ordered tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](tensor.MustShape(3, 4), backend)
func Zeros[T DType, B Backend](shape *Shape, b B) *Tensor[T, B] {
	return ZerosOrder[T](shape, C, b)
}

// ZerosOrder creates a tensor filled with zeros, dense in order C or F.
// Any other order falls back to C.
func ZerosOrder[T DType, B Backend](shape *Shape, order Order, b B) *Tensor[T, B] {
	if !order.dense() {
		order = C
	}
	return newTensor(mustDense(shape, 0, order), NewStorage[T](shape.Size()), b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](tensor.MustShape(3, 3), 3.14, backend)
func Full[T DType, B Backend](shape *Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T](shape, b)
	t.storage.Fill(value)
	return t
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	t := tensor.Eye[float32](3, backend) // 3x3 identity matrix
func Eye[T DType, B Backend](n int, b B) (*Tensor[T, B], error) {
	shape, err := NewShape(n, n)
	if err != nil {
		return nil, err
	}
	t := Zeros[T](shape, b)
	for i := 0; i < n; i++ {
		t.Set(1, i, i)
	}
	return t, nil
}

// Seq creates a rank-1 tensor holding start, start+step, ..., n values.
//
// Example:
//
//	t, _ := tensor.Seq[int32](0, 2, 5, backend) // [0, 2, 4, 6, 8]
func Seq[T DType, B Backend](start, step T, n int, b B) (*Tensor[T, B], error) {
	shape, err := NewShape(n)
	if err != nil {
		return nil, err
	}
	t := Zeros[T](shape, b)
	v := start
	for i := range t.storage.data {
		t.storage.data[i] = v
		v += step
	}
	return t, nil
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
// A nil rng uses the global generator. Only floating kinds are supported.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
func Rand[T DType, B Backend](shape *Shape, rng *rand.Rand, b B) (*Tensor[T, B], error) {
	if !dataTypeOf[T]().IsFloat() {
		return nil, fmt.Errorf("rand on %s: %w", dataTypeOf[T](), ErrUnsupportedOperation)
	}
	uniform := rand.Float64 //nolint:gosec // G404: ML uses math/rand intentionally
	if rng != nil {
		uniform = rng.Float64
	}
	t := Zeros[T](shape, b)
	for i := range t.storage.data {
		t.storage.data[i] = T(uniform())
	}
	return t, nil
}

// Randn creates a tensor with values from a standard normal distribution.
// A nil rng uses the global generator. Only floating kinds are supported.
func Randn[T DType, B Backend](shape *Shape, rng *rand.Rand, b B) (*Tensor[T, B], error) {
	if !dataTypeOf[T]().IsFloat() {
		return nil, fmt.Errorf("randn on %s: %w", dataTypeOf[T](), ErrUnsupportedOperation)
	}
	normal := rand.NormFloat64 //nolint:gosec // G404: ML uses math/rand intentionally
	if rng != nil {
		normal = rng.NormFloat64
	}
	t := Zeros[T](shape, b)
	for i := range t.storage.data {
		t.storage.data[i] = T(normal())
	}
	return t, nil
}

// FromSlice creates a C-ordered tensor from a Go slice.
// The slice is copied into the tensor's storage.
func FromSlice[T DType, B Backend](data []T, shape *Shape, b B) (*Tensor[T, B], error) {
	if shape.Size() != len(data) {
		return nil, fmt.Errorf("shape %s requires %d elements, but got %d: %w",
			shape, shape.Size(), len(data), ErrShapeSizeMismatch)
	}
	t := Zeros[T](shape, b)
	copy(t.storage.data, data)
	return t, nil
}

// Wrap creates a view over data with an explicit offset and strides.
// The data is not copied; writes through the tensor are visible in data.
//
// Example:
//
//	col, _ := tensor.Wrap(frame, tensor.MustShape(rows), 2, []int{cols}, backend)
func Wrap[T DType, B Backend](data []T, shape *Shape, offset int, strides []int, b B) (*Tensor[T, B], error) {
	layout, err := NewStrideLayout(shape, offset, strides)
	if err != nil {
		return nil, err
	}
	return New(layout, WrapStorage(data), b)
}
