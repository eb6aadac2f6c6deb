package tensor

import (
	"fmt"
	"slices"
)

// Layout maps logical N-dimensional indices onto flat storage positions.
type Layout interface {
	Shape() *Shape
	Rank() int
	Size() int
	Offset() int
	Strides() []int
	IsCOrdered() bool
	IsFOrdered() bool
	StorageFastOrder() Order
	Pointer(index ...int) int
}

var _ Layout = StrideLayout{}

// StrideLayout is a Layout described by a base offset and one stride per axis.
// It is an immutable value: every transform returns a new StrideLayout.
type StrideLayout struct {
	shape   *Shape
	offset  int
	strides []int
}

// NewStrideLayout creates a layout over shape with explicit offset and strides.
func NewStrideLayout(shape *Shape, offset int, strides []int) (StrideLayout, error) {
	if len(strides) != shape.Rank() {
		return StrideLayout{}, fmt.Errorf("layout: %d strides for rank %d: %w",
			len(strides), shape.Rank(), ErrNonConformantShapes)
	}
	return StrideLayout{shape: shape, offset: offset, strides: slices.Clone(strides)}, nil
}

// DenseLayout creates a dense layout over shape in order C or F.
func DenseLayout(shape *Shape, offset int, order Order) (StrideLayout, error) {
	st, err := shape.Strides(order)
	if err != nil {
		return StrideLayout{}, err
	}
	return StrideLayout{shape: shape, offset: offset, strides: slices.Clone(st)}, nil
}

// Shape returns the layout's shape.
func (l StrideLayout) Shape() *Shape { return l.shape }

// Rank returns the number of axes.
func (l StrideLayout) Rank() int { return l.shape.Rank() }

// Size returns the number of elements.
func (l StrideLayout) Size() int { return l.shape.Size() }

// Dim returns the size of axis pos; negative pos counts from the end.
func (l StrideLayout) Dim(pos int) int { return l.shape.Dim(pos) }

// Offset returns the storage position of the all-zero index.
func (l StrideLayout) Offset() int { return l.offset }

// Strides returns a copy of the per-axis strides.
func (l StrideLayout) Strides() []int { return slices.Clone(l.strides) }

// Stride returns the stride of axis pos; negative pos counts from the end.
func (l StrideLayout) Stride(pos int) int {
	if pos < 0 {
		pos += len(l.strides)
	}
	return l.strides[pos]
}

// IsCOrdered reports whether the layout is a dense row-major buffer.
// Strides of size-1 axes are ignored since they are never traversed.
func (l StrideLayout) IsCOrdered() bool {
	return l.matches(l.shape.mustStrides(C))
}

// IsFOrdered reports whether the layout is a dense column-major buffer.
func (l StrideLayout) IsFOrdered() bool {
	return l.matches(l.shape.mustStrides(F))
}

func (l StrideLayout) matches(dense []int) bool {
	for i, d := range l.shape.dims {
		if d > 1 && l.strides[i] != dense[i] {
			return false
		}
	}
	return true
}

// IsDense reports whether the layout is C or F ordered.
func (l StrideLayout) IsDense() bool {
	return l.IsCOrdered() || l.IsFOrdered()
}

// StorageFastOrder returns C or F when the layout is dense in that order,
// preferring C when both hold, and S otherwise.
func (l StrideLayout) StorageFastOrder() Order {
	switch {
	case l.IsCOrdered():
		return C
	case l.IsFOrdered():
		return F
	default:
		return S
	}
}

// Pointer returns offset + sum(strides[i] * index[i]).
// Indices are not bounds checked; out-of-range values yield an invalid pointer.
func (l StrideLayout) Pointer(index ...int) int {
	p := l.offset
	for i, v := range index {
		p += l.strides[i] * v
	}
	return p
}

// Index inverts Pointer. Only dense layouts support it.
func (l StrideLayout) Index(pointer int) ([]int, error) {
	order := l.StorageFastOrder()
	if order == S {
		return nil, fmt.Errorf("index of pointer %d on strides %v: %w", pointer, l.strides, ErrUnsupportedLayout)
	}
	return l.shape.Index(order, pointer-l.offset)
}

// Equal reports whether both layouts have the same dims, offset and strides.
func (l StrideLayout) Equal(other StrideLayout) bool {
	return l.offset == other.offset && l.shape.Equal(other.shape) && slices.Equal(l.strides, other.strides)
}

// String describes the layout, e.g. "StrideLayout{dims:[2,3], offset:0, strides:[3,1]}".
func (l StrideLayout) String() string {
	return fmt.Sprintf("StrideLayout{dims:%s, offset:%d, strides:%v}", l.shape, l.offset, l.strides)
}
