package linalg

import (
	"fmt"
	"math"

	"github.com/born-ml/narray/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// symTol is the relative tolerance used when checking symmetry.
const symTol = 1e-12

// Solve returns x such that a * x = b. a must be square; b is (n, k).
func Solve[B tensor.Backend](a, b *tensor.Tensor[float64, B]) (*tensor.Tensor[float64, B], error) {
	am, err := square("solve", a)
	if err != nil {
		return nil, err
	}
	bm, err := dense(b)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if n, _ := am.Dims(); n != b.Dim(0) {
		return nil, fmt.Errorf("solve: %s \\ %s: %w", a.Shape(), b.Shape(), tensor.ErrNonConformantShapes)
	}
	var x mat.Dense
	if err := x.Solve(am, bm); err != nil {
		return nil, fmt.Errorf("solve: %v: %w", err, ErrSingular)
	}
	return FromDense(&x, a.Backend())
}

// Inverse returns the inverse of the square matrix a.
func Inverse[B tensor.Backend](a *tensor.Tensor[float64, B]) (*tensor.Tensor[float64, B], error) {
	am, err := square("inverse", a)
	if err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err := inv.Inverse(am); err != nil {
		return nil, fmt.Errorf("inverse: %v: %w", err, ErrSingular)
	}
	return FromDense(&inv, a.Backend())
}

// Det returns the determinant of the square matrix a.
func Det[B tensor.Backend](a *tensor.Tensor[float64, B]) (float64, error) {
	am, err := square("det", a)
	if err != nil {
		return 0, err
	}
	return mat.Det(am), nil
}

// Cholesky returns the lower triangular L with a = L * L^T.
// a must be symmetric positive definite.
func Cholesky[B tensor.Backend](a *tensor.Tensor[float64, B]) (*tensor.Tensor[float64, B], error) {
	am, err := square("cholesky", a)
	if err != nil {
		return nil, err
	}
	n, _ := am.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			u, l := am.At(i, j), am.At(j, i)
			if math.Abs(u-l) > symTol*math.Max(1, math.Max(math.Abs(u), math.Abs(l))) {
				return nil, fmt.Errorf("cholesky: a[%d,%d]=%g, a[%d,%d]=%g: %w", i, j, u, j, i, l, ErrAsymmetry)
			}
			sym.SetSym(i, j, u)
		}
	}
	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return nil, fmt.Errorf("cholesky: %w", ErrNotPositiveDefinite)
	}
	var l mat.TriDense
	ch.LTo(&l)
	return FromMatrix(&l, a.Backend())
}

// QR returns the factors Q (m, m) and R (m, n) of a = Q * R. a must have at
// least as many rows as columns.
func QR[B tensor.Backend](a *tensor.Tensor[float64, B]) (q, r *tensor.Tensor[float64, B], err error) {
	am, err := dense(a)
	if err != nil {
		return nil, nil, fmt.Errorf("qr: %w", err)
	}
	if rows, cols := am.Dims(); rows < cols {
		return nil, nil, fmt.Errorf("qr: %s has fewer rows than columns: %w", a.Shape(), tensor.ErrNonConformantShapes)
	}
	var f mat.QR
	f.Factorize(am)
	var qm, rm mat.Dense
	f.QTo(&qm)
	f.RTo(&rm)
	if q, err = FromDense(&qm, a.Backend()); err != nil {
		return nil, nil, err
	}
	if r, err = FromDense(&rm, a.Backend()); err != nil {
		return nil, nil, err
	}
	return q, r, nil
}
