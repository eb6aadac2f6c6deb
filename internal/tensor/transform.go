package tensor

import (
	"fmt"
	"slices"
)

// Squeeze drops every axis of size 1. An all-ones shape becomes rank 0.
func (l StrideLayout) Squeeze() StrideLayout {
	dims := make([]int, 0, l.Rank())
	strides := make([]int, 0, l.Rank())
	for i, d := range l.shape.dims {
		if d != 1 {
			dims = append(dims, d)
			strides = append(strides, l.strides[i])
		}
	}
	if len(dims) == l.Rank() {
		return l
	}
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}
}

// Unsqueeze inserts an axis of size 1 at position axis, 0 <= axis <= rank.
// Negative axis counts from the end, -1 meaning after the last axis.
// The new axis gets stride 0; it is never traversed.
func (l StrideLayout) Unsqueeze(axis int) (StrideLayout, error) {
	ax, err := normalizeAxis(axis, l.Rank()+1)
	if err != nil {
		return StrideLayout{}, fmt.Errorf("unsqueeze: %w", err)
	}
	dims := slices.Insert(l.shape.Dims(), ax, 1)
	strides := slices.Insert(slices.Clone(l.strides), ax, 0)
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}, nil
}

// Revert reverses the order of axes and their strides. This is transpose.
func (l StrideLayout) Revert() StrideLayout {
	dims := l.shape.Dims()
	strides := slices.Clone(l.strides)
	slices.Reverse(dims)
	slices.Reverse(strides)
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}
}

// MoveAxis moves axis src to position dst, shifting the axes in between.
func (l StrideLayout) MoveAxis(src, dst int) (StrideLayout, error) {
	s, err := normalizeAxis(src, l.Rank())
	if err != nil {
		return StrideLayout{}, fmt.Errorf("move axis: %w", err)
	}
	d, err := normalizeAxis(dst, l.Rank())
	if err != nil {
		return StrideLayout{}, fmt.Errorf("move axis: %w", err)
	}
	if s == d {
		return l, nil
	}
	dims := l.shape.Dims()
	strides := slices.Clone(l.strides)
	dim, stride := dims[s], strides[s]
	dims = slices.Insert(slices.Delete(dims, s, s+1), d, dim)
	strides = slices.Insert(slices.Delete(strides, s, s+1), d, stride)
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}, nil
}

// SwapAxis exchanges axes src and dst.
func (l StrideLayout) SwapAxis(src, dst int) (StrideLayout, error) {
	s, err := normalizeAxis(src, l.Rank())
	if err != nil {
		return StrideLayout{}, fmt.Errorf("swap axis: %w", err)
	}
	d, err := normalizeAxis(dst, l.Rank())
	if err != nil {
		return StrideLayout{}, fmt.Errorf("swap axis: %w", err)
	}
	if s == d {
		return l, nil
	}
	dims := l.shape.Dims()
	strides := slices.Clone(l.strides)
	dims[s], dims[d] = dims[d], dims[s]
	strides[s], strides[d] = strides[d], strides[s]
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}, nil
}

// Permute reorders axes so that new axis i is old axis axes[i].
func (l StrideLayout) Permute(axes ...int) (StrideLayout, error) {
	if len(axes) != l.Rank() {
		return StrideLayout{}, fmt.Errorf("permute: %d axes for rank %d: %w", len(axes), l.Rank(), ErrNonConformantShapes)
	}
	seen := make([]bool, l.Rank())
	dims := make([]int, l.Rank())
	strides := make([]int, l.Rank())
	for i, a := range axes {
		ax, err := normalizeAxis(a, l.Rank())
		if err != nil {
			return StrideLayout{}, fmt.Errorf("permute: %w", err)
		}
		if seen[ax] {
			return StrideLayout{}, fmt.Errorf("permute: axis %d repeated: %w", a, ErrAxisOutOfRange)
		}
		seen[ax] = true
		dims[i] = l.shape.dims[ax]
		strides[i] = l.strides[ax]
	}
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}, nil
}

// Narrow restricts axis to the half-open range [start, end).
func (l StrideLayout) Narrow(axis, start, end int) (StrideLayout, error) {
	ax, err := normalizeAxis(axis, l.Rank())
	if err != nil {
		return StrideLayout{}, fmt.Errorf("narrow: %w", err)
	}
	if start < 0 || end > l.shape.dims[ax] || start >= end {
		return StrideLayout{}, fmt.Errorf("narrow: range [%d,%d) on axis of size %d: %w",
			start, end, l.shape.dims[ax], ErrInvalidShape)
	}
	dims := l.shape.Dims()
	dims[ax] = end - start
	return StrideLayout{
		shape:   MustShape(dims...),
		offset:  l.offset + start*l.strides[ax],
		strides: slices.Clone(l.strides),
	}, nil
}

// dropAxis returns the layout with axis removed, keeping the offset.
// It is used to enumerate the heads of 1-D lanes along axis.
func (l StrideLayout) dropAxis(ax int) StrideLayout {
	dims := slices.Delete(l.shape.Dims(), ax, ax+1)
	strides := slices.Delete(slices.Clone(l.strides), ax, ax+1)
	return StrideLayout{shape: MustShape(dims...), offset: l.offset, strides: strides}
}
