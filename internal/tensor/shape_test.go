package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShape(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		size int
	}{
		{"scalar", nil, 1},
		{"vector", []int{5}, 5},
		{"matrix", []int{2, 3}, 6},
		{"cube", []int{2, 3, 4}, 24},
		{"unit axes", []int{1, 7, 1}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewShape(tt.dims...)
			require.NoError(t, err)
			assert.Equal(t, tt.size, s.Size())
			assert.Equal(t, len(tt.dims), s.Rank())
		})
	}
}

func TestNewShape_Invalid(t *testing.T) {
	for _, dims := range [][]int{{0}, {2, -1}, {3, 0, 2}} {
		_, err := NewShape(dims...)
		assert.ErrorIs(t, err, ErrInvalidShape, "dims %v", dims)
	}

	_, err := NewShape(1<<16, 1<<16)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewShape(MaxSize)
	assert.NoError(t, err)
	_, err = NewShape(MaxSize, 2)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestShape_DimsAreCopied(t *testing.T) {
	dims := []int{2, 3}
	s := MustShape(dims...)
	dims[0] = 9
	assert.Equal(t, 2, s.Dim(0))

	got := s.Dims()
	got[1] = 9
	assert.Equal(t, 3, s.Dim(1))
}

func TestShape_NegativeDim(t *testing.T) {
	s := MustShape(2, 3, 4)
	assert.Equal(t, 4, s.Dim(-1))
	assert.Equal(t, 2, s.Dim(-3))
	assert.Panics(t, func() { s.Dim(3) })
}

func TestShape_NarrowDims(t *testing.T) {
	s := MustShape(2, 3, 4)

	got, err := s.NarrowDims(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, got)

	got, err = s.NarrowDims(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got)

	_, err = s.NarrowDims(3)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
}

func TestShape_UnitDimCount(t *testing.T) {
	assert.Equal(t, 0, MustShape(2, 3).UnitDimCount())
	assert.Equal(t, 2, MustShape(1, 3, 1).UnitDimCount())
	assert.Equal(t, 0, MustShape().UnitDimCount())
}

func TestShape_Strides(t *testing.T) {
	s := MustShape(2, 3, 4)

	c, err := s.Strides(C)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 4, 1}, c)

	f, err := s.Strides(F)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 6}, f)

	_, err = s.Strides(S)
	assert.ErrorIs(t, err, ErrUnsupportedOrder)
}

func TestShape_IndexPositionRoundTrip(t *testing.T) {
	shapes := []*Shape{MustShape(), MustShape(7), MustShape(2, 3), MustShape(3, 1, 4), MustShape(2, 3, 4, 5)}
	for _, s := range shapes {
		for _, order := range []Order{C, F} {
			for p := 0; p < s.Size(); p++ {
				idx, err := s.Index(order, p)
				require.NoError(t, err)
				got, err := s.Position(order, idx...)
				require.NoError(t, err)
				require.Equal(t, p, got, "shape %s order %s index %v", s, order, idx)
			}
		}
	}
}

func TestShape_Index(t *testing.T) {
	s := MustShape(2, 3)

	idx, err := s.Index(C, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, idx)

	idx, err = s.Index(F, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, idx)

	_, err = s.Index(S, 0)
	assert.ErrorIs(t, err, ErrUnsupportedOrder)
	_, err = s.Position(S, 0, 0)
	assert.ErrorIs(t, err, ErrUnsupportedOrder)
	_, err = s.Position(C, 0)
	assert.ErrorIs(t, err, ErrNonConformantShapes)
}

func TestShape_Equal(t *testing.T) {
	a, b := MustShape(2, 3), MustShape(2, 3)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(MustShape(3, 2)))
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), MustShape(23).Key())
	assert.Equal(t, "[2,3]", a.String())
	assert.Equal(t, "[]", MustShape().String())

	seen := map[string]bool{a.Key(): true}
	assert.True(t, seen[b.Key()])
}
