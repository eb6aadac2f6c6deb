package tensor

import (
	"fmt"
	"math"
)

// reduce folds every element into acc, segment by segment in storage order.
func reduce[T DType, B Backend, A any](t *Tensor[T, B], acc A, fn func(A, T) A) A {
	lp := NewLoop(t.layout, S)
	d := t.storage.data
	for _, off := range lp.Offsets {
		for i, p := 0, off; i < lp.Size; i, p = i+1, p+lp.Step {
			acc = fn(acc, d[p])
		}
	}
	return acc
}

// Sum returns the sum of all elements. NaN propagates.
func (t *Tensor[T, B]) Sum() T {
	var s T
	t.forEachSegment(func(k Kernels[T], d []T, off, step, n int) {
		s += k.Sum(d, off, step, n)
	})
	return s
}

// NanSum returns the sum of all non-NaN elements.
func (t *Tensor[T, B]) NanSum() T {
	return reduce(t, T(0), func(s, x T) T {
		if IsNaN(x) {
			return s
		}
		return s + x
	})
}

// Prod returns the product of all elements.
func (t *Tensor[T, B]) Prod() T {
	return reduce(t, T(1), func(p, x T) T { return p * x })
}

// NanProd returns the product of all non-NaN elements.
func (t *Tensor[T, B]) NanProd() T {
	return reduce(t, T(1), func(p, x T) T {
		if IsNaN(x) {
			return p
		}
		return p * x
	})
}

// Min returns the smallest element; any NaN makes the result NaN.
func (t *Tensor[T, B]) Min() T {
	return reduceExtreme(t, false, func(a, b T) bool { return a < b })
}

// Max returns the largest element; any NaN makes the result NaN.
func (t *Tensor[T, B]) Max() T {
	return reduceExtreme(t, false, func(a, b T) bool { return a > b })
}

// NanMin returns the smallest non-NaN element, or NaN if there is none.
func (t *Tensor[T, B]) NanMin() T {
	return reduceExtreme(t, true, func(a, b T) bool { return a < b })
}

// NanMax returns the largest non-NaN element, or NaN if there is none.
func (t *Tensor[T, B]) NanMax() T {
	return reduceExtreme(t, true, func(a, b T) bool { return a > b })
}

type extreme[T DType] struct {
	v     T
	found bool
	nan   bool
}

func reduceExtreme[T DType, B Backend](t *Tensor[T, B], skipNaN bool, better func(a, b T) bool) T {
	r := reduce(t, extreme[T]{}, func(e extreme[T], x T) extreme[T] {
		switch {
		case IsNaN(x):
			e.nan = true
		case !e.found || better(x, e.v):
			e.v, e.found = x, true
		}
		return e
	})
	if (r.nan && !skipNaN) || !r.found {
		return T(math.NaN())
	}
	return r.v
}

// Mean returns the arithmetic mean of all elements.
func (t *Tensor[T, B]) Mean() float64 {
	return reduce(t, 0.0, func(s float64, x T) float64 { return s + float64(x) }) / float64(t.Size())
}

// NanMean returns the mean of the non-NaN elements. It is NaN when every
// element is NaN.
func (t *Tensor[T, B]) NanMean() float64 {
	type acc struct {
		sum float64
		n   int
	}
	r := reduce(t, acc{}, func(a acc, x T) acc {
		if !IsNaN(x) {
			a.sum += float64(x)
			a.n++
		}
		return a
	})
	return r.sum / float64(r.n)
}

// NanCount returns the number of NaN elements.
func (t *Tensor[T, B]) NanCount() int {
	if t.DType().IsInteger() {
		return 0
	}
	return reduce(t, 0, func(n int, x T) int {
		if IsNaN(x) {
			return n + 1
		}
		return n
	})
}

// ZeroCount returns the number of elements exactly equal to zero.
func (t *Tensor[T, B]) ZeroCount() int {
	return reduce(t, 0, func(n int, x T) int {
		if x == 0 {
			return n + 1
		}
		return n
	})
}

// SumDim sums along axis, returning a tensor with that axis removed.
// Supports negative axis indexing.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.MustShape(2, 3, 4), backend)
//	y, _ := x.SumDim(-1) // shape: [2, 3]
func (t *Tensor[T, B]) SumDim(axis int) (*Tensor[T, B], error) {
	k := kernelsFor[T](t.backend.Vectorized())
	return t.reduceDim("sumdim", axis, k.Sum)
}

// MeanDim averages along axis. Floating point kinds only.
func (t *Tensor[T, B]) MeanDim(axis int) (*Tensor[T, B], error) {
	if t.DType().IsInteger() {
		return nil, fmt.Errorf("meandim on %s tensor: %w", t.DType(), ErrUnsupportedOperation)
	}
	k := kernelsFor[T](t.backend.Vectorized())
	return t.reduceDim("meandim", axis, func(d []T, off, step, n int) T {
		return k.Sum(d, off, step, n) / T(n)
	})
}

// MinDim takes the minimum along axis; NaN propagates.
func (t *Tensor[T, B]) MinDim(axis int) (*Tensor[T, B], error) {
	return t.reduceDim("mindim", axis, laneExtreme(func(a, b T) bool { return a < b }))
}

// MaxDim takes the maximum along axis; NaN propagates.
func (t *Tensor[T, B]) MaxDim(axis int) (*Tensor[T, B], error) {
	return t.reduceDim("maxdim", axis, laneExtreme(func(a, b T) bool { return a > b }))
}

func laneExtreme[T DType](better func(a, b T) bool) func(d []T, off, step, n int) T {
	return func(d []T, off, step, n int) T {
		v := d[off]
		for i, p := 1, off+step; i < n; i, p = i+1, p+step {
			x := d[p]
			if IsNaN(x) {
				return x
			}
			if better(x, v) {
				v = x
			}
		}
		return v
	}
}

// reduceDim reduces each 1-D lane along axis with lane(d, head, stride, n).
func (t *Tensor[T, B]) reduceDim(name string, axis int, lane func(d []T, off, step, n int) T) (*Tensor[T, B], error) {
	ax, err := normalizeAxis(axis, t.Rank())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	dims, err := t.Shape().NarrowDims(ax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out := Zeros[T](MustShape(dims...), t.backend)
	heads := t.layout.dropAxis(ax)
	loops, err := NewJointLoop(C, heads, out.layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	src, dst := loops[0], loops[1]
	step, n := t.layout.strides[ax], t.layout.shape.dims[ax]
	for j := range src.Offsets {
		for i, sp, dp := 0, src.Offsets[j], dst.Offsets[j]; i < src.Size; i, sp, dp = i+1, sp+src.Step, dp+dst.Step {
			out.storage.data[dp] = lane(t.storage.data, sp, step, n)
		}
	}
	return out, nil
}
