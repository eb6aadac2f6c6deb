package tensor

// Backend is the execution context a tensor carries. It decides the kernel
// strategy and runs bulk work on a fixed worker pool. There is no process
// wide default: callers pass a Backend to every constructor.
//
// Implementations:
//   - internal/backend/cpu: goroutine pool sized at construction
//   - MockBackend: sequential, for tests
type Backend interface {
	// Name returns a short backend name.
	Name() string

	// Threads returns the worker pool size.
	Threads() int

	// Vectorized reports whether kernels use the unrolled strategy.
	Vectorized() bool

	// CacheBytes returns the per-worker cache budget used to size tiles
	// and matrix blocks.
	CacheBytes() int

	// ParallelThreshold returns the element count above which bulk copies
	// are split across workers.
	ParallelThreshold() int

	// Run executes every task, possibly concurrently, and returns once all
	// of them have completed. Tasks write disjoint memory.
	Run(tasks []func())
}
