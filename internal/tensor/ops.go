package tensor

import (
	"fmt"
	"math"
)

// UnaryOp names an element-wise function applied by Apply.
type UnaryOp int

// Supported unary operations.
const (
	Abs UnaryOp = iota
	Neg
	Sqr
	Sqrt
	Exp
	Log
	Log1p
	Sin
	Cos
	Tan
	Tanh
	Sigmoid
)

var unaryNames = [...]string{"abs", "neg", "sqr", "sqrt", "exp", "log", "log1p", "sin", "cos", "tan", "tanh", "sigmoid"}

// String returns the operation name.
func (op UnaryOp) String() string {
	if op < 0 || int(op) >= len(unaryNames) {
		return "unknown"
	}
	return unaryNames[op]
}

// FloatOnly reports whether op requires a floating point kind.
func (op UnaryOp) FloatOnly() bool {
	switch op {
	case Abs, Neg, Sqr:
		return false
	default:
		return true
	}
}

func unaryFunc[T DType](op UnaryOp) func(T) T {
	switch op {
	case Abs:
		return func(x T) T {
			if x < 0 {
				return -x
			}
			return x
		}
	case Neg:
		return func(x T) T { return -x }
	case Sqr:
		return func(x T) T { return x * x }
	}
	var f func(float64) float64
	switch op {
	case Sqrt:
		f = math.Sqrt
	case Exp:
		f = math.Exp
	case Log:
		f = math.Log
	case Log1p:
		f = math.Log1p
	case Sin:
		f = math.Sin
	case Cos:
		f = math.Cos
	case Tan:
		f = math.Tan
	case Tanh:
		f = math.Tanh
	case Sigmoid:
		f = func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
	default:
		panic(fmt.Sprintf("unknown unary op %d", int(op)))
	}
	return func(x T) T { return T(f(float64(x))) }
}

// forEachSegment runs fn over every segment of the tensor's storage order loop.
func (t *Tensor[T, B]) forEachSegment(fn func(k Kernels[T], d []T, off, step, n int)) {
	lp := NewLoop(t.layout, S)
	k := kernelsFor[T](t.backend.Vectorized())
	for _, off := range lp.Offsets {
		fn(k, t.storage.data, off, lp.Step, lp.Size)
	}
}

// Fill sets every element to value in place and returns the receiver.
func (t *Tensor[T, B]) Fill(value T) *Tensor[T, B] {
	t.forEachSegment(func(k Kernels[T], d []T, off, step, n int) {
		k.Fill(d, off, step, n, value)
	})
	return t
}

// FillNaN replaces NaN elements with value in place and returns the receiver.
// Integral tensors hold no NaN and are left unchanged.
func (t *Tensor[T, B]) FillNaN(value T) *Tensor[T, B] {
	if t.DType().IsInteger() {
		return t
	}
	return t.Map(func(x T) T {
		if IsNaN(x) {
			return value
		}
		return x
	})
}

// Clamp limits every element to [lo, hi] in place and returns the receiver.
// NaN elements are left as they are.
func (t *Tensor[T, B]) Clamp(lo, hi T) *Tensor[T, B] {
	return t.Map(func(x T) T {
		if x < lo {
			return lo
		}
		if x > hi {
			return hi
		}
		return x
	})
}

// Map replaces every element x with fn(x) in place and returns the receiver.
func (t *Tensor[T, B]) Map(fn func(T) T) *Tensor[T, B] {
	t.forEachSegment(func(k Kernels[T], d []T, off, step, n int) {
		k.Map(d, off, step, n, fn)
	})
	return t
}

// Apply runs op on every element in place and returns the receiver.
// Floating point only operations fail with ErrUnsupportedOperation on
// integral tensors.
func (t *Tensor[T, B]) Apply(op UnaryOp) (*Tensor[T, B], error) {
	if op.FloatOnly() && t.DType().IsInteger() {
		return nil, fmt.Errorf("%s on %s tensor: %w", op, t.DType(), ErrUnsupportedOperation)
	}
	return t.Map(unaryFunc[T](op)), nil
}

// AddScalar adds v to every element in place.
func (t *Tensor[T, B]) AddScalar(v T) *Tensor[T, B] {
	return t.Map(func(x T) T { return x + v })
}

// SubScalar subtracts v from every element in place.
func (t *Tensor[T, B]) SubScalar(v T) *Tensor[T, B] {
	return t.Map(func(x T) T { return x - v })
}

// MulScalar multiplies every element by v in place.
func (t *Tensor[T, B]) MulScalar(v T) *Tensor[T, B] {
	return t.Map(func(x T) T { return x * v })
}

// DivScalar divides every element by v in place.
// Integral division by zero panics as in Go.
func (t *Tensor[T, B]) DivScalar(v T) *Tensor[T, B] {
	return t.Map(func(x T) T { return x / v })
}

// zip applies fn(x, y) element-wise with other, writing into the receiver.
func (t *Tensor[T, B]) zip(name string, other *Tensor[T, B], fn func(x, y T) T) (*Tensor[T, B], error) {
	loops, err := NewJointLoop(S, t.layout, other.layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	k := kernelsFor[T](t.backend.Vectorized())
	dst, src := loops[0], loops[1]
	for j := range dst.Offsets {
		k.Zip(t.storage.data, dst.Offsets[j], dst.Step, other.storage.data, src.Offsets[j], src.Step, dst.Size, fn)
	}
	return t, nil
}

// Add adds other element-wise in place. Shapes must match.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.zip("add", other, func(x, y T) T { return x + y })
}

// Sub subtracts other element-wise in place. Shapes must match.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.zip("sub", other, func(x, y T) T { return x - y })
}

// Mul multiplies by other element-wise in place. Shapes must match.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.zip("mul", other, func(x, y T) T { return x * y })
}

// Div divides by other element-wise in place. Shapes must match.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.zip("div", other, func(x, y T) T { return x / y })
}
