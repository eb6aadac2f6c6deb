package tensor

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a sequential backend for testing.
// Tasks run one after another on the calling goroutine, which gives the
// reference result parallel backends are compared against.
type MockBackend struct {
	// Vector selects the unrolled kernel strategy.
	Vector bool
	// Cache is the cache budget in bytes; zero means 256 KiB.
	Cache int
	// Threshold is the parallel copy threshold; zero means 1 << 20.
	Threshold int

	runs int
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Threads returns 1.
func (m *MockBackend) Threads() int {
	return 1
}

// Vectorized reports the Vector field.
func (m *MockBackend) Vectorized() bool {
	return m.Vector
}

// CacheBytes returns the cache budget.
func (m *MockBackend) CacheBytes() int {
	if m.Cache <= 0 {
		return 256 << 10
	}
	return m.Cache
}

// ParallelThreshold returns the parallel copy threshold.
func (m *MockBackend) ParallelThreshold() int {
	if m.Threshold <= 0 {
		return 1 << 20
	}
	return m.Threshold
}

// Run executes tasks in order.
func (m *MockBackend) Run(tasks []func()) {
	m.runs++
	for _, task := range tasks {
		task()
	}
}

// Runs returns how many times Run was called.
func (m *MockBackend) Runs() int {
	return m.runs
}
