package linalg

import "errors"

// Sentinel errors. Context is added with fmt.Errorf("op: ...: %w", ErrX);
// callers match with errors.Is.
var (
	// ErrNotMatrix reports an operand that is not rank 2.
	ErrNotMatrix = errors.New("linalg: operand is not a matrix")

	// ErrNonSquare reports a matrix that must be square but is not.
	ErrNonSquare = errors.New("linalg: matrix is not square")

	// ErrAsymmetry reports a matrix that must be symmetric but is not.
	ErrAsymmetry = errors.New("linalg: matrix is not symmetric")

	// ErrNotPositiveDefinite reports a failed Cholesky factorization.
	ErrNotPositiveDefinite = errors.New("linalg: matrix is not positive definite")

	// ErrSingular reports a singular or numerically singular system.
	ErrSingular = errors.New("linalg: matrix is singular")
)
