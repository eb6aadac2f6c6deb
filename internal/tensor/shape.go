package tensor

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// MaxSize is the largest element count a Shape may describe.
const MaxSize = math.MaxInt32 - 8

// Shape is an immutable list of positive dimension sizes.
// C and F stride tables are computed on first use and cached.
// A *Shape is safe to share between goroutines and tensors.
type Shape struct {
	dims []int
	size int

	cOnce    sync.Once
	cStrides []int
	fOnce    sync.Once
	fStrides []int
}

// NewShape creates a Shape from the given dimensions.
// No dimensions yields a rank-0 scalar shape of size 1.
func NewShape(dims ...int) (*Shape, error) {
	size := 1
	for i, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("dimension %d is %d (must be > 0): %w", i, d, ErrInvalidShape)
		}
		if size > MaxSize/d {
			return nil, fmt.Errorf("element count of %v exceeds %d: %w", dims, MaxSize, ErrInvalidShape)
		}
		size *= d
	}
	return &Shape{dims: slices.Clone(dims), size: size}, nil
}

// MustShape is like NewShape but panics on error.
func MustShape(dims ...int) *Shape {
	s, err := NewShape(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// Rank returns the number of dimensions.
func (s *Shape) Rank() int {
	return len(s.dims)
}

// Dims returns a copy of the dimension sizes.
func (s *Shape) Dims() []int {
	return slices.Clone(s.dims)
}

// Dim returns the size of dimension pos. Negative pos counts from the end.
// It panics if pos is out of range, like slice indexing.
func (s *Shape) Dim(pos int) int {
	if pos < 0 {
		pos += len(s.dims)
	}
	return s.dims[pos]
}

// Size returns the total number of elements.
func (s *Shape) Size() int {
	return s.size
}

// UnitDimCount returns the number of axes of size exactly 1.
func (s *Shape) UnitDimCount() int {
	n := 0
	for _, d := range s.dims {
		if d == 1 {
			n++
		}
	}
	return n
}

// NarrowDims returns the dimensions with axis removed.
func (s *Shape) NarrowDims(axis int) ([]int, error) {
	ax, err := normalizeAxis(axis, len(s.dims))
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(s.dims)-1)
	out = append(out, s.dims[:ax]...)
	return append(out, s.dims[ax+1:]...), nil
}

// Strides returns the dense stride table for order, which must be C or F.
// The returned slice is shared and must not be modified.
func (s *Shape) Strides(order Order) ([]int, error) {
	switch order {
	case C:
		s.cOnce.Do(func() { s.cStrides = cStrides(s.dims) })
		return s.cStrides, nil
	case F:
		s.fOnce.Do(func() { s.fStrides = fStrides(s.dims) })
		return s.fStrides, nil
	default:
		return nil, fmt.Errorf("strides for order %s: %w", order, ErrUnsupportedOrder)
	}
}

// mustStrides is Strides for a dense order known to be valid.
func (s *Shape) mustStrides(order Order) []int {
	st, err := s.Strides(order)
	if err != nil {
		panic(err)
	}
	return st
}

// Index converts a flat position in the given order into an N-dimensional index.
func (s *Shape) Index(order Order, pos int) ([]int, error) {
	st, err := s.Strides(order)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(s.dims))
	switch order {
	case C:
		for i := range s.dims {
			idx[i] = pos / st[i]
			pos %= st[i]
		}
	case F:
		for i := len(s.dims) - 1; i >= 0; i-- {
			idx[i] = pos / st[i]
			pos %= st[i]
		}
	}
	return idx, nil
}

// Position converts an N-dimensional index into a flat position in the given order.
func (s *Shape) Position(order Order, index ...int) (int, error) {
	st, err := s.Strides(order)
	if err != nil {
		return 0, err
	}
	if len(index) != len(s.dims) {
		return 0, fmt.Errorf("position: got %d indices for rank %d: %w", len(index), len(s.dims), ErrNonConformantShapes)
	}
	pos := 0
	for i, v := range index {
		pos += v * st[i]
	}
	return pos, nil
}

// Equal reports whether both shapes have the same dimensions.
func (s *Shape) Equal(other *Shape) bool {
	return slices.Equal(s.dims, other.dims)
}

// Key returns a string usable as a map key; equal shapes have equal keys.
func (s *Shape) Key() string {
	var b strings.Builder
	for i, d := range s.dims {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

// String returns the dimensions as "[d0,d1,...]".
func (s *Shape) String() string {
	return "[" + s.Key() + "]"
}

// cStrides calculates row-major strides: stride[i] = product of dims after i.
func cStrides(dims []int) []int {
	strides := make([]int, len(dims))
	acc := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= dims[i]
	}
	return strides
}

// fStrides calculates column-major strides: stride[i] = product of dims before i.
func fStrides(dims []int) []int {
	strides := make([]int, len(dims))
	acc := 1
	for i := range dims {
		strides[i] = acc
		acc *= dims[i]
	}
	return strides
}

// normalizeAxis resolves a possibly negative axis against rank.
func normalizeAxis(axis, rank int) (int, error) {
	ax := axis
	if ax < 0 {
		ax += rank
	}
	if ax < 0 || ax >= rank {
		return 0, fmt.Errorf("axis %d for rank %d: %w", axis, rank, ErrAxisOutOfRange)
	}
	return ax, nil
}
