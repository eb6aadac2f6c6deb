// Package linalg bridges rank-2 tensors and gonum matrices and exposes the
// decompositions gonum provides.
//
// Tensors of any kind convert to *mat.Dense by copy. Float64 tensors whose
// columns are contiguous can also be viewed without a copy, and any
// *mat.Dense can be wrapped as a tensor over its backing slice.
package linalg

import (
	"fmt"

	"github.com/born-ml/narray/internal/tensor"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// ToDense copies a rank-2 tensor into a new *mat.Dense.
func ToDense[T tensor.DType, B tensor.Backend](t *tensor.Tensor[T, B]) (*mat.Dense, error) {
	if t.Rank() != 2 {
		return nil, fmt.Errorf("to dense: shape %s: %w", t.Shape(), ErrNotMatrix)
	}
	r, c := t.Dim(0), t.Dim(1)
	data := make([]float64, 0, r*c)
	for _, v := range t.Values() {
		data = append(data, float64(v))
	}
	return mat.NewDense(r, c, data), nil
}

// View wraps a float64 rank-2 tensor as a *mat.Dense sharing its storage.
// The column stride must be 1 and the row stride at least the column count;
// other layouts fail with tensor.ErrUnsupportedLayout (use ToDense instead).
func View[B tensor.Backend](t *tensor.Tensor[float64, B]) (*mat.Dense, error) {
	if t.Rank() != 2 {
		return nil, fmt.Errorf("view: shape %s: %w", t.Shape(), ErrNotMatrix)
	}
	l := t.Layout()
	r, c := t.Dim(0), t.Dim(1)
	stride := l.Stride(0)
	if r == 1 {
		stride = c
	}
	if (l.Stride(1) != 1 && c > 1) || stride < c {
		return nil, fmt.Errorf("view: %s: %w", l, tensor.ErrUnsupportedLayout)
	}
	off := l.Offset()
	var m mat.Dense
	m.SetRawMatrix(blas64.General{
		Rows:   r,
		Cols:   c,
		Stride: stride,
		Data:   t.Storage().Data()[off : off+(r-1)*stride+c],
	})
	return &m, nil
}

// FromDense wraps m as a tensor over its backing slice without copying.
// Writes through either side are visible in the other.
func FromDense[B tensor.Backend](m *mat.Dense, b B) (*tensor.Tensor[float64, B], error) {
	raw := m.RawMatrix()
	shape, err := tensor.NewShape(raw.Rows, raw.Cols)
	if err != nil {
		return nil, fmt.Errorf("from dense: %w", err)
	}
	return tensor.Wrap(raw.Data, shape, 0, []int{raw.Stride, 1}, b)
}

// FromMatrix copies any gonum matrix into a new C-ordered tensor.
func FromMatrix[B tensor.Backend](m mat.Matrix, b B) (*tensor.Tensor[float64, B], error) {
	r, c := m.Dims()
	shape, err := tensor.NewShape(r, c)
	if err != nil {
		return nil, fmt.Errorf("from matrix: %w", err)
	}
	out := tensor.Zeros[float64](shape, b)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(m.At(i, j), i, j)
		}
	}
	return out, nil
}

// dense returns a view when t allows one and a copy otherwise.
func dense[B tensor.Backend](t *tensor.Tensor[float64, B]) (*mat.Dense, error) {
	if m, err := View(t); err == nil {
		return m, nil
	}
	return ToDense(t)
}

// square converts t and checks that it is square.
func square[B tensor.Backend](op string, t *tensor.Tensor[float64, B]) (*mat.Dense, error) {
	m, err := dense(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if r, c := m.Dims(); r != c {
		return nil, fmt.Errorf("%s: %dx%d: %w", op, r, c, ErrNonSquare)
	}
	return m, nil
}
