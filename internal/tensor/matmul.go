package tensor

import "fmt"

// Dot returns the inner product of two rank-1 tensors of equal length.
func (t *Tensor[T, B]) Dot(other *Tensor[T, B]) (T, error) {
	if t.Rank() != 1 || other.Rank() != 1 || t.Size() != other.Size() {
		return 0, fmt.Errorf("dot: %s . %s: %w", t.Shape(), other.Shape(), ErrNonConformantShapes)
	}
	k := kernelsFor[T](t.backend.Vectorized())
	return k.Dot(t.storage.data, t.layout.offset, t.layout.strides[0],
		other.storage.data, other.layout.offset, other.layout.strides[0], t.Size()), nil
}

// Mv multiplies the rank-2 receiver (m, k) by the rank-1 v (k), giving (m).
func (t *Tensor[T, B]) Mv(v *Tensor[T, B]) (*Tensor[T, B], error) {
	if t.Rank() != 2 || v.Rank() != 1 || t.Dim(1) != v.Dim(0) {
		return nil, fmt.Errorf("mv: %s x %s: %w", t.Shape(), v.Shape(), ErrNonConformantShapes)
	}
	m, n := t.Dim(0), t.Dim(1)
	k := kernelsFor[T](t.backend.Vectorized())
	out := Zeros[T](MustShape(m), t.backend)
	rowStride, colStride := t.layout.strides[0], t.layout.strides[1]
	for i := 0; i < m; i++ {
		out.storage.data[i] = k.Dot(t.storage.data, t.layout.offset+i*rowStride, colStride,
			v.storage.data, v.layout.offset, v.layout.strides[0], n)
	}
	return out, nil
}

// Mm multiplies the rank-2 receiver (m, k) by other (k, n), giving a
// C-ordered (m, n) tensor.
//
// Output rows are split into blocks sized from the backend cache budget and
// the blocks run on the backend's workers. Each output row accumulates its
// k terms in ascending order, so the result does not depend on scheduling.
func (t *Tensor[T, B]) Mm(other *Tensor[T, B]) (*Tensor[T, B], error) {
	if t.Rank() != 2 || other.Rank() != 2 || t.Dim(1) != other.Dim(0) {
		return nil, fmt.Errorf("mm: %s x %s: %w", t.Shape(), other.Shape(), ErrNonConformantShapes)
	}
	m, inner, n := t.Dim(0), t.Dim(1), other.Dim(1)
	out := Zeros[T](MustShape(m, n), t.backend)
	kern := kernelsFor[T](t.backend.Vectorized())

	elem := t.DType().Size()
	// k-chunk: rows of other that fit in half the cache budget.
	kChunk := max(1, t.backend.CacheBytes()/(2*elem*n))
	// row block: enough rows to share a chunk, but at least one block per worker.
	rowBlock := max(1, min(t.backend.CacheBytes()/(2*elem*max(inner, n)), ceilDiv(m, t.backend.Threads())))

	a, b, c := t.storage.data, other.storage.data, out.storage.data
	aRow, aCol := t.layout.strides[0], t.layout.strides[1]
	bRow, bCol := other.layout.strides[0], other.layout.strides[1]

	var tasks []func()
	for r0 := 0; r0 < m; r0 += rowBlock {
		r1 := min(r0+rowBlock, m)
		tasks = append(tasks, func() {
			for k0 := 0; k0 < inner; k0 += kChunk {
				k1 := min(k0+kChunk, inner)
				for i := r0; i < r1; i++ {
					ap := t.layout.offset + i*aRow
					for p := k0; p < k1; p++ {
						kern.Axpy(a[ap+p*aCol], b, other.layout.offset+p*bRow, bCol, c, i*n, 1, n)
					}
				}
			}
		})
	}
	t.backend.Run(tasks)
	return out, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
