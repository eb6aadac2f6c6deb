package tensor

// Squeeze removes every dimension of size 1.
//
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.MustShape(2, 1, 3), backend)
//	y := x.Squeeze() // Shape: [2, 3]
func (t *Tensor[T, B]) Squeeze() *Tensor[T, B] {
	return newTensor(t.layout.Squeeze(), t.storage, t.backend)
}

// Unsqueeze adds a dimension of size 1 at the specified position.
//
// Supports negative dim indexing (-1 appends after the last axis).
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.MustShape(2, 3), backend)
//	y, _ := x.Unsqueeze(1)  // Shape: [2, 1, 3]
//	z, _ := x.Unsqueeze(-1) // Shape: [2, 3, 1]
func (t *Tensor[T, B]) Unsqueeze(dim int) (*Tensor[T, B], error) {
	l, err := t.layout.Unsqueeze(dim)
	if err != nil {
		return nil, err
	}
	return newTensor(l, t.storage, t.backend), nil
}

// MoveAxis moves axis src to dst. View operation.
func (t *Tensor[T, B]) MoveAxis(src, dst int) (*Tensor[T, B], error) {
	l, err := t.layout.MoveAxis(src, dst)
	if err != nil {
		return nil, err
	}
	return newTensor(l, t.storage, t.backend), nil
}

// SwapAxis exchanges axes src and dst. View operation.
func (t *Tensor[T, B]) SwapAxis(src, dst int) (*Tensor[T, B], error) {
	l, err := t.layout.SwapAxis(src, dst)
	if err != nil {
		return nil, err
	}
	return newTensor(l, t.storage, t.backend), nil
}

// Permute reorders axes so that new axis i is old axis axes[i]. View operation.
func (t *Tensor[T, B]) Permute(axes ...int) (*Tensor[T, B], error) {
	l, err := t.layout.Permute(axes...)
	if err != nil {
		return nil, err
	}
	return newTensor(l, t.storage, t.backend), nil
}

// Narrow restricts axis to [start, end). View operation.
//
// Example:
//
//	x := tensor.Seq[float64](0, 1, 10, backend)
//	y, _ := x.Narrow(0, 2, 5) // [2, 3, 4], shares storage with x
func (t *Tensor[T, B]) Narrow(axis, start, end int) (*Tensor[T, B], error) {
	l, err := t.layout.Narrow(axis, start, end)
	if err != nil {
		return nil, err
	}
	return newTensor(l, t.storage, t.backend), nil
}

// Cast converts every element to kind D into a new C-ordered tensor.
func Cast[D, S DType, B Backend](t *Tensor[S, B]) *Tensor[D, B] {
	out := Zeros[D](t.Shape(), t.backend)
	loops, err := NewJointLoop(C, t.layout, out.layout)
	if err != nil {
		panic(err)
	}
	src, dst := loops[0], loops[1]
	for j := range src.Offsets {
		for i, sp, dp := 0, src.Offsets[j], dst.Offsets[j]; i < src.Size; i, sp, dp = i+1, sp+src.Step, dp+dst.Step {
			out.storage.data[dp] = D(t.storage.data[sp])
		}
	}
	return out
}
