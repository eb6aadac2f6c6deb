package tensor

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointers enumerates Pointer over every index of l in C order.
func pointers(l StrideLayout) []int {
	out := make([]int, 0, l.Size())
	idx := make([]int, l.Rank())
	for p := 0; p < l.Size(); p++ {
		out = append(out, l.Pointer(idx...))
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < l.Dim(i) {
				break
			}
			idx[i] = 0
		}
	}
	return out
}

func loopLayouts(t *testing.T) map[string]StrideLayout {
	t.Helper()
	c := mustLayout(t, []int{2, 3, 4}, 0, []int{12, 4, 1})
	f := mustLayout(t, []int{2, 3, 4}, 0, []int{1, 2, 6})
	perm, err := c.Permute(2, 0, 1)
	require.NoError(t, err)
	narrow, err := c.Narrow(2, 1, 3)
	require.NoError(t, err)
	unsq, err := c.Unsqueeze(1)
	require.NoError(t, err)
	return map[string]StrideLayout{
		"C":          c,
		"F":          f,
		"transposed": c.Revert(),
		"permuted":   perm,
		"narrowed":   narrow,
		"unsqueezed": unsq,
		"gapped":     mustLayout(t, []int{3, 2}, 1, []int{10, 3}),
		"negative":   mustLayout(t, []int{3, 2}, 5, []int{-2, 1}),
		"scalar":     mustLayout(t, nil, 4, nil),
		"ones":       mustLayout(t, []int{1, 1}, 2, []int{5, 7}),
	}
}

func TestLoop_Coverage(t *testing.T) {
	for name, l := range loopLayouts(t) {
		for _, order := range []Order{C, F, S} {
			t.Run(name+"/"+order.String(), func(t *testing.T) {
				lp := NewLoop(l, order)
				require.Equal(t, l.Size(), lp.Len())

				got := slices.Collect(lp.Positions())
				want := pointers(l)
				slices.Sort(got)
				slices.Sort(want)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestLoop_StorageOrderIsIncreasing(t *testing.T) {
	for name, l := range loopLayouts(t) {
		if name == "negative" {
			continue
		}
		got := slices.Collect(NewLoop(l, S).Positions())
		assert.True(t, slices.IsSorted(got), "%s: %v", name, got)
	}
}

func TestLoop_LogicalOrder(t *testing.T) {
	l := mustLayout(t, []int{2, 3}, 0, []int{3, 1})

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, slices.Collect(NewLoop(l, C).Positions()))
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, slices.Collect(NewLoop(l, F).Positions()))
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, slices.Collect(NewLoop(l.Revert(), C).Positions()))
}

func TestLoop_DenseCoalesces(t *testing.T) {
	l := mustLayout(t, []int{2, 3, 4}, 3, []int{12, 4, 1})

	lp := NewLoop(l, S)
	assert.Equal(t, []int{3}, lp.Offsets)
	assert.Equal(t, 1, lp.Step)
	assert.Equal(t, 24, lp.Size)

	f := NewLoop(l.Revert(), S)
	assert.Equal(t, []int{3}, f.Offsets)
	assert.Equal(t, 24, f.Size)
}

func TestLoop_NonUnitStep(t *testing.T) {
	l := mustLayout(t, []int{3, 2}, 1, []int{10, 3})

	lp := NewLoop(l, S)
	assert.Equal(t, 3, lp.Step)
	assert.Equal(t, 2, lp.Size)
	assert.Equal(t, []int{1, 11, 21}, lp.Offsets)
}

func TestLoop_Scalar(t *testing.T) {
	lp := NewLoop(mustLayout(t, nil, 6, nil), C)
	assert.Equal(t, Loop{Offsets: []int{6}, Step: 1, Size: 1}, lp)
}

func TestJointLoop(t *testing.T) {
	c := mustLayout(t, []int{2, 3}, 0, []int{3, 1})
	f := mustLayout(t, []int{2, 3}, 0, []int{1, 2})

	loops, err := NewJointLoop(C, c, f)
	require.NoError(t, err)
	require.Len(t, loops, 2)
	assert.Equal(t, loops[0].Size, loops[1].Size)
	assert.Equal(t, len(loops[0].Offsets), len(loops[1].Offsets))

	// zipped positions visit the same logical index
	a := slices.Collect(loops[0].Positions())
	b := slices.Collect(loops[1].Positions())
	for i := range a {
		ic, err := c.Index(a[i])
		require.NoError(t, err)
		iff, err := f.Index(b[i])
		require.NoError(t, err)
		assert.Equal(t, ic, iff)
	}

	_, err = NewJointLoop(C, c, c.Revert())
	assert.ErrorIs(t, err, ErrNonConformantShapes)
}
