package tensor

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// Loop is a loop descriptor: a layout flattened into segments that kernels
// scan with a counted loop. Segment j covers the storage positions
// Offsets[j] + i*Step for i in [0, Size).
//
// Every position reachable from the layout is visited exactly once. When the
// scan order is the layout's own storage order the positions come out in
// increasing storage order.
type Loop struct {
	Offsets []int
	Step    int
	Size    int
}

// NewLoop plans a scan of l in the given order. S scans in storage order.
func NewLoop(l StrideLayout, order Order) Loop {
	return planLoops(order, []StrideLayout{l})[0]
}

// NewJointLoop plans one scan shared by several layouts of identical dims.
// The returned loops have the same Size and the same number of offsets, and
// segment j of every loop visits the same logical indices, so kernels can zip
// them. For order S the first layout decides the scan order.
func NewJointLoop(order Order, layouts ...StrideLayout) ([]Loop, error) {
	if len(layouts) == 0 {
		return nil, nil
	}
	for _, l := range layouts[1:] {
		if !l.shape.Equal(layouts[0].shape) {
			return nil, fmt.Errorf("joint loop: dims %s vs %s: %w", layouts[0].shape, l.shape, ErrNonConformantShapes)
		}
	}
	return planLoops(order, layouts), nil
}

// Len returns the number of positions the loop visits.
func (lp Loop) Len() int {
	return len(lp.Offsets) * lp.Size
}

// Positions yields every storage position in scan order.
func (lp Loop) Positions() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, off := range lp.Offsets {
			p := off
			for i := 0; i < lp.Size; i++ {
				if !yield(p) {
					return
				}
				p += lp.Step
			}
		}
	}
}

// loopAxis is a run of axes merged into one scan axis.
type loopAxis struct {
	dim     int
	strides []int // one per layout, stride of the innermost merged axis
}

func planLoops(order Order, layouts []StrideLayout) []Loop {
	ref := layouts[0]
	axes := scanAxes(order, ref)

	// Build merged axes inner first. An outer axis folds into the current
	// group when it continues the group contiguously in every layout.
	var groups []loopAxis
	for i := len(axes) - 1; i >= 0; i-- {
		a := axes[i]
		dim := ref.shape.dims[a]
		if n := len(groups); n > 0 {
			g := &groups[n-1]
			contiguous := true
			for k, l := range layouts {
				if l.strides[a] != g.strides[k]*g.dim {
					contiguous = false
					break
				}
			}
			if contiguous {
				g.dim *= dim
				continue
			}
		}
		strides := make([]int, len(layouts))
		for k, l := range layouts {
			strides[k] = l.strides[a]
		}
		groups = append(groups, loopAxis{dim: dim, strides: strides})
	}

	loops := make([]Loop, len(layouts))
	if len(groups) == 0 {
		for k, l := range layouts {
			loops[k] = Loop{Offsets: []int{l.offset}, Step: 1, Size: 1}
		}
		return loops
	}

	inner, outer := groups[0], groups[1:]
	count := 1
	for _, g := range outer {
		count *= g.dim
	}
	ptr := make([]int, len(layouts))
	for k, l := range layouts {
		loops[k] = Loop{Offsets: make([]int, count), Step: inner.strides[k], Size: inner.dim}
		ptr[k] = l.offset
	}

	// Odometer over the outer axes; outer[0] varies fastest.
	ctr := make([]int, len(outer))
	for c := 0; c < count; c++ {
		for k := range loops {
			loops[k].Offsets[c] = ptr[k]
		}
		for j := range outer {
			ctr[j]++
			if ctr[j] < outer[j].dim {
				for k := range ptr {
					ptr[k] += outer[j].strides[k]
				}
				break
			}
			ctr[j] = 0
			for k := range ptr {
				ptr[k] -= outer[j].strides[k] * (outer[j].dim - 1)
			}
		}
	}
	return loops
}

// scanAxes returns the non-unit axes of ref from outermost to innermost.
func scanAxes(order Order, ref StrideLayout) []int {
	if order == S {
		order = ref.StorageFastOrder()
	}
	rank := ref.Rank()
	axes := make([]int, 0, rank)
	for i := 0; i < rank; i++ {
		if ref.shape.dims[i] > 1 {
			axes = append(axes, i)
		}
	}
	switch order {
	case C:
	case F:
		slices.Reverse(axes)
	default:
		// Largest stride outermost, smallest stride becomes the step axis.
		slices.SortStableFunc(axes, func(a, b int) int {
			return cmp.Compare(abs(ref.strides[b]), abs(ref.strides[a]))
		})
	}
	return axes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
