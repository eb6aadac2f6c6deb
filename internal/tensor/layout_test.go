package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, dims []int, offset int, strides []int) StrideLayout {
	t.Helper()
	l, err := NewStrideLayout(MustShape(dims...), offset, strides)
	require.NoError(t, err)
	return l
}

func TestNewStrideLayout_RankMismatch(t *testing.T) {
	_, err := NewStrideLayout(MustShape(2, 3), 0, []int{1})
	assert.ErrorIs(t, err, ErrNonConformantShapes)
}

func TestStrideLayout_Ordering(t *testing.T) {
	tests := []struct {
		name    string
		layout  StrideLayout
		c, f    bool
		storage Order
	}{
		{"dense C", mustLayout(t, []int{2, 3}, 0, []int{3, 1}), true, false, C},
		{"dense F", mustLayout(t, []int{2, 3}, 0, []int{1, 2}), false, true, F},
		{"rank 1", mustLayout(t, []int{5}, 4, []int{1}), true, true, C},
		{"scalar", mustLayout(t, nil, 3, nil), true, true, C},
		{"gapped", mustLayout(t, []int{5}, 0, []int{2}), false, false, S},
		{"sub view", mustLayout(t, []int{2, 2}, 1, []int{3, 1}), false, false, S},
		{"unit axis ignored", mustLayout(t, []int{2, 1, 3}, 0, []int{3, 0, 1}), true, false, C},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.c, tt.layout.IsCOrdered())
			assert.Equal(t, tt.f, tt.layout.IsFOrdered())
			assert.Equal(t, tt.storage, tt.layout.StorageFastOrder())
		})
	}
}

func TestStrideLayout_PointerIndex(t *testing.T) {
	l, err := DenseLayout(MustShape(2, 3, 4), 5, C)
	require.NoError(t, err)
	assert.Equal(t, 5+12+8+3, l.Pointer(1, 2, 3))

	for _, order := range []Order{C, F} {
		l, err := DenseLayout(MustShape(2, 3, 4), 7, order)
		require.NoError(t, err)
		for p := 7; p < 7+24; p++ {
			idx, err := l.Index(p)
			require.NoError(t, err)
			assert.Equal(t, p, l.Pointer(idx...))
		}
	}

	gapped := mustLayout(t, []int{3}, 0, []int{2})
	_, err = gapped.Index(2)
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
}

func TestStrideLayout_RevertInvolution(t *testing.T) {
	layouts := []StrideLayout{
		mustLayout(t, []int{2, 3, 4}, 0, []int{12, 4, 1}),
		mustLayout(t, []int{5, 2}, 3, []int{1, 10}),
		mustLayout(t, nil, 2, nil),
	}
	for _, l := range layouts {
		assert.True(t, l.Revert().Revert().Equal(l), "%s", l)
	}

	r := mustLayout(t, []int{2, 3, 4}, 1, []int{12, 4, 1}).Revert()
	assert.Equal(t, []int{4, 3, 2}, r.Shape().Dims())
	assert.Equal(t, []int{1, 4, 12}, r.Strides())
	assert.Equal(t, 1, r.Offset())
	assert.True(t, r.IsFOrdered())
}

func TestStrideLayout_Squeeze(t *testing.T) {
	l := mustLayout(t, []int{1, 3, 1, 2}, 4, []int{6, 2, 2, 1})
	sq := l.Squeeze()
	assert.Equal(t, []int{3, 2}, sq.Shape().Dims())
	assert.Equal(t, []int{2, 1}, sq.Strides())
	assert.Equal(t, 4, sq.Offset())

	ones := mustLayout(t, []int{1, 1, 1}, 9, []int{1, 1, 1}).Squeeze()
	assert.Equal(t, 0, ones.Rank())
	assert.Equal(t, 1, ones.Size())
	assert.Equal(t, 9, ones.Pointer())
}

func TestStrideLayout_UnsqueezeSqueeze(t *testing.T) {
	l := mustLayout(t, []int{2, 3}, 0, []int{3, 1})
	for _, axis := range []int{0, 1, 2, -1} {
		u, err := l.Unsqueeze(axis)
		require.NoError(t, err)
		assert.Equal(t, 3, u.Rank())
		assert.Equal(t, 1, u.Shape().UnitDimCount())
		assert.True(t, u.IsCOrdered())
		assert.True(t, u.Squeeze().Equal(l), "axis %d", axis)
	}

	u, err := l.Unsqueeze(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, u.Shape().Dims())
	assert.Equal(t, []int{3, 0, 1}, u.Strides())

	_, err = l.Unsqueeze(3)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
}

func TestStrideLayout_MoveAxis(t *testing.T) {
	l := mustLayout(t, []int{2, 3, 4}, 0, []int{12, 4, 1})

	m, err := l.MoveAxis(0, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 2}, m.Shape().Dims())
	assert.Equal(t, []int{4, 1, 12}, m.Strides())

	m, err = l.MoveAxis(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, m.Shape().Dims())
	assert.Equal(t, []int{1, 12, 4}, m.Strides())

	same, err := l.MoveAxis(1, -2)
	require.NoError(t, err)
	assert.True(t, same.Equal(l))

	_, err = l.MoveAxis(0, 3)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)

	// the source is untouched
	assert.Equal(t, []int{2, 3, 4}, l.Shape().Dims())
	assert.Equal(t, []int{12, 4, 1}, l.Strides())
}

func TestStrideLayout_SwapAxis(t *testing.T) {
	l := mustLayout(t, []int{2, 3, 4}, 0, []int{12, 4, 1})

	s, err := l.SwapAxis(0, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, s.Shape().Dims())
	assert.Equal(t, []int{1, 4, 12}, s.Strides())
	assert.True(t, s.Equal(l.Revert()))

	same, err := l.SwapAxis(-2, 1)
	require.NoError(t, err)
	assert.True(t, same.Equal(l))

	_, err = l.SwapAxis(-4, 0)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
}

func TestStrideLayout_Permute(t *testing.T) {
	l := mustLayout(t, []int{2, 3, 4}, 0, []int{12, 4, 1})

	p, err := l.Permute(1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 2}, p.Shape().Dims())
	assert.Equal(t, []int{4, 1, 12}, p.Strides())

	_, err = l.Permute(0, 0, 1)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
	_, err = l.Permute(0, 1)
	assert.ErrorIs(t, err, ErrNonConformantShapes)
}

func TestStrideLayout_Narrow(t *testing.T) {
	l := mustLayout(t, []int{4, 5}, 0, []int{5, 1})

	n, err := l.Narrow(1, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, n.Shape().Dims())
	assert.Equal(t, 1, n.Offset())
	assert.Equal(t, l.Pointer(2, 3), n.Pointer(2, 2))
	assert.Equal(t, S, n.StorageFastOrder())

	n, err = l.Narrow(0, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, n.Offset())
	assert.True(t, n.IsCOrdered())

	_, err = l.Narrow(0, 3, 3)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = l.Narrow(0, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = l.Narrow(2, 0, 1)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
}
