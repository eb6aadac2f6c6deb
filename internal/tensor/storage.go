package tensor

// Storage is a flat, homogeneous buffer addressed by pointer in [0, Size()).
// Several tensors may share one Storage through different layouts. Storage
// does no locking; callers serialise mutation.
type Storage[T DType] struct {
	data []T
}

// NewStorage allocates a zero-filled storage of n elements.
func NewStorage[T DType](n int) *Storage[T] {
	return &Storage[T]{data: make([]T, n)}
}

// WrapStorage wraps data without copying.
func WrapStorage[T DType](data []T) *Storage[T] {
	return &Storage[T]{data: data}
}

// DType returns the element kind.
func (s *Storage[T]) DType() DataType {
	return dataTypeOf[T]()
}

// Size returns the number of elements.
func (s *Storage[T]) Size() int {
	return len(s.data)
}

// Get returns the element at pointer p.
func (s *Storage[T]) Get(p int) T {
	return s.data[p]
}

// Set stores v at pointer p.
func (s *Storage[T]) Set(p int, v T) {
	s.data[p] = v
}

// Inc adds v to the element at pointer p.
func (s *Storage[T]) Inc(p int, v T) {
	s.data[p] += v
}

// Fill sets every element to v.
func (s *Storage[T]) Fill(v T) {
	for i := range s.data {
		s.data[i] = v
	}
}

// Data returns the backing slice.
//
// WARNING: Modifications to the returned slice modify the storage.
func (s *Storage[T]) Data() []T {
	return s.data
}
