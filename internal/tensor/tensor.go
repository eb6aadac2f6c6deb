package tensor

import "fmt"

// Tensor is a typed view: a StrideLayout over a Storage, bound to a Backend.
// Several tensors may share one Storage; views such as T() never copy.
//
// Type Parameters:
//   - T: element kind (must satisfy DType constraint)
//   - B: execution backend (must implement Backend interface)
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.MustShape(3, 4), backend)
//	y := x.T() // view with shape [4,3], same storage
type Tensor[T DType, B Backend] struct {
	layout  StrideLayout
	storage *Storage[T]
	backend B
}

// newTensor binds a layout and storage without validation.
func newTensor[T DType, B Backend](layout StrideLayout, storage *Storage[T], b B) *Tensor[T, B] {
	return &Tensor[T, B]{layout: layout, storage: storage, backend: b}
}

// New creates a Tensor over storage with the given layout. It fails with
// ErrUnsupportedLayout if the layout reaches outside the storage.
func New[T DType, B Backend](layout StrideLayout, storage *Storage[T], b B) (*Tensor[T, B], error) {
	lo, hi := layout.offset, layout.offset
	for i, d := range layout.shape.dims {
		span := layout.strides[i] * (d - 1)
		if span < 0 {
			lo += span
		} else {
			hi += span
		}
	}
	if lo < 0 || hi >= storage.Size() {
		return nil, fmt.Errorf("%s reaches [%d,%d] outside storage of %d: %w",
			layout, lo, hi, storage.Size(), ErrUnsupportedLayout)
	}
	return newTensor(layout, storage, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() *Shape {
	return t.layout.shape
}

// Layout returns the tensor's layout.
func (t *Tensor[T, B]) Layout() StrideLayout {
	return t.layout
}

// Storage returns the backing storage, shared with every view of it.
func (t *Tensor[T, B]) Storage() *Storage[T] {
	return t.storage
}

// Backend returns the execution backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType {
	return dataTypeOf[T]()
}

// Rank returns the number of axes.
func (t *Tensor[T, B]) Rank() int {
	return t.layout.Rank()
}

// Size returns the total number of elements.
func (t *Tensor[T, B]) Size() int {
	return t.layout.Size()
}

// Dim returns the size of axis pos; negative pos counts from the end.
func (t *Tensor[T, B]) Dim(pos int) int {
	return t.layout.Dim(pos)
}

// pointer validates index and returns its storage position.
func (t *Tensor[T, B]) pointer(index []int) int {
	dims := t.layout.shape.dims
	if len(index) != len(dims) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(dims), len(index)))
	}
	for i, idx := range index {
		if idx < 0 || idx >= dims[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, dims[i]))
		}
	}
	return t.layout.Pointer(index...)
}

// Get returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) Get(index ...int) T {
	return t.storage.data[t.pointer(index)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) Set(value T, index ...int) {
	t.storage.data[t.pointer(index)] = value
}

// PtrGet returns the element at storage position p.
func (t *Tensor[T, B]) PtrGet(p int) T {
	return t.storage.data[p]
}

// PtrSet stores value at storage position p.
func (t *Tensor[T, B]) PtrSet(p int, value T) {
	t.storage.data[p] = value
}

// GetFloat64 is Get converted to float64, for call sites that handle every kind.
func (t *Tensor[T, B]) GetFloat64(index ...int) float64 {
	return float64(t.Get(index...))
}

// SetFloat64 is Set from a float64, converted with Convert rules.
func (t *Tensor[T, B]) SetFloat64(value float64, index ...int) {
	t.Set(T(value), index...)
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor[T, B]) Item() T {
	if t.Size() != 1 {
		panic(fmt.Sprintf("Item() needs a single element, got shape %s", t.Shape()))
	}
	return t.storage.data[t.layout.offset]
}

// Values returns a copy of the elements in C order.
func (t *Tensor[T, B]) Values() []T {
	out := make([]T, t.Size())
	dst := mustDense(t.Shape(), 0, C)
	copyLayout(kernelsFor[T](false), t.storage.data, t.layout, out, dst, C)
	return out
}

// String returns a short description of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%s", t.DType(), t.Shape())
}

// T returns the transpose: a view with reversed axes over the same storage.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	return newTensor(t.layout.Revert(), t.storage, t.backend)
}

// Reshape returns a tensor with the given shape whose elements, read in
// order, equal this tensor's elements read in order. When the tensor is
// dense in order the result is a view over the same storage; otherwise the
// data is copied.
func (t *Tensor[T, B]) Reshape(shape *Shape, order Order) (*Tensor[T, B], error) {
	if !order.dense() {
		return nil, fmt.Errorf("reshape in order %s: %w", order, ErrUnsupportedOrder)
	}
	if shape.Size() != t.Size() {
		return nil, fmt.Errorf("reshape %s to %s: %w", t.Shape(), shape, ErrShapeSizeMismatch)
	}
	if (order == C && t.layout.IsCOrdered()) || (order == F && t.layout.IsFOrdered()) {
		layout := mustDense(shape, t.layout.offset, order)
		return newTensor(layout, t.storage, t.backend), nil
	}
	c, err := t.Copy(order)
	if err != nil {
		return nil, err
	}
	return newTensor(mustDense(shape, 0, order), c.storage, t.backend), nil
}

// Flatten returns a rank-1 tensor of the elements in C order.
func (t *Tensor[T, B]) Flatten() *Tensor[T, B] {
	r, err := t.Reshape(MustShape(t.Size()), C)
	if err != nil {
		panic(err)
	}
	return r
}

// Copy returns a tensor with freshly allocated storage, dense in order.
// Order S keeps the storage order when it is dense and uses C otherwise.
func (t *Tensor[T, B]) Copy(order Order) (*Tensor[T, B], error) {
	return t.CopyTo(NewStorage[T](t.Size()), order)
}

// CopyTo writes the elements into dst, dense in order starting at pointer 0,
// and returns a tensor over dst. Large copies are tiled and run on the
// backend's workers; CopyTo returns after every tile is written.
func (t *Tensor[T, B]) CopyTo(dst *Storage[T], order Order) (*Tensor[T, B], error) {
	order = t.resolveOrder(order)
	if dst.Size() < t.Size() {
		return nil, fmt.Errorf("copy %s into storage of %d: %w", t.Shape(), dst.Size(), ErrShapeSizeMismatch)
	}
	layout := mustDense(t.Shape(), 0, order)
	k := kernelsFor[T](t.backend.Vectorized())

	if t.Size() <= t.backend.ParallelThreshold() {
		copyLayout(k, t.storage.data, t.layout, dst.data, layout, order)
		return newTensor(layout, dst, t.backend), nil
	}

	budget := max(t.backend.CacheBytes()/(2*t.DType().Size()), lanes)
	var tiles []tile
	splitTiles(t.layout, layout, budget, &tiles)
	tasks := make([]func(), len(tiles))
	for i, tl := range tiles {
		tasks[i] = func() {
			copyLayout(k, t.storage.data, tl.src, dst.data, tl.dst, order)
		}
	}
	t.backend.Run(tasks)
	return newTensor(layout, dst, t.backend), nil
}

// resolveOrder maps S onto the dense order a copy should produce.
func (t *Tensor[T, B]) resolveOrder(order Order) Order {
	if order.dense() {
		return order
	}
	if o := t.layout.StorageFastOrder(); o.dense() {
		return o
	}
	return C
}

func mustDense(shape *Shape, offset int, order Order) StrideLayout {
	l, err := DenseLayout(shape, offset, order)
	if err != nil {
		panic(err)
	}
	return l
}
