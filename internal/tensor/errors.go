package tensor

import "errors"

// Sentinel errors returned by the tensor engine. Wrap them with context via
// fmt.Errorf("op: ...: %w", ErrX); callers match with errors.Is.
var (
	// ErrInvalidShape reports a non-positive dimension or an element count
	// above MaxSize.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrUnsupportedOrder reports a request for an order other than C or F
	// where a dense order is required.
	ErrUnsupportedOrder = errors.New("tensor: unsupported order")

	// ErrUnsupportedLayout reports an operation that cannot run on a
	// non-dense strided layout.
	ErrUnsupportedLayout = errors.New("tensor: unsupported layout")

	// ErrShapeSizeMismatch reports a reshape or copy between element counts
	// that differ.
	ErrShapeSizeMismatch = errors.New("tensor: shape size mismatch")

	// ErrNonConformantShapes reports operands whose dimensions do not align.
	ErrNonConformantShapes = errors.New("tensor: non-conformant shapes")

	// ErrUnsupportedOperation reports a floating point only operation on an
	// integral tensor.
	ErrUnsupportedOperation = errors.New("tensor: unsupported operation")

	// ErrAxisOutOfRange reports an axis argument outside [-rank, rank).
	ErrAxisOutOfRange = errors.New("tensor: axis out of range")
)
