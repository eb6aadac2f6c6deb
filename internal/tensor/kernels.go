package tensor

// Kernels runs the inner loop of one loop segment. Both strategies consume
// the same (offset, step, n) triples produced by Loop, so swapping them never
// touches layout logic.
type Kernels[T DType] interface {
	Fill(d []T, off, step, n int, v T)
	Sum(d []T, off, step, n int) T
	Map(d []T, off, step, n int, fn func(T) T)
	Copy(dst []T, doff, dstep int, src []T, soff, sstep, n int)
	Zip(dst []T, doff, dstep int, src []T, soff, sstep, n int, fn func(a, b T) T)
	Dot(a []T, aoff, astep int, b []T, boff, bstep, n int) T
	Axpy(alpha T, x []T, xoff, xstep int, y []T, yoff, ystep, n int)
}

// kernelsFor selects the unrolled strategy when vectorized is set.
func kernelsFor[T DType](vectorized bool) Kernels[T] {
	if vectorized {
		return unrolledKernels[T]{}
	}
	return scalarKernels[T]{}
}

// scalarKernels is the baseline strategy: one element per iteration.
type scalarKernels[T DType] struct{}

func (scalarKernels[T]) Fill(d []T, off, step, n int, v T) {
	for i, p := 0, off; i < n; i, p = i+1, p+step {
		d[p] = v
	}
}

func (scalarKernels[T]) Sum(d []T, off, step, n int) T {
	var s T
	for i, p := 0, off; i < n; i, p = i+1, p+step {
		s += d[p]
	}
	return s
}

func (scalarKernels[T]) Map(d []T, off, step, n int, fn func(T) T) {
	for i, p := 0, off; i < n; i, p = i+1, p+step {
		d[p] = fn(d[p])
	}
}

func (scalarKernels[T]) Copy(dst []T, doff, dstep int, src []T, soff, sstep, n int) {
	if dstep == 1 && sstep == 1 {
		copy(dst[doff:doff+n], src[soff:soff+n])
		return
	}
	for i, dp, sp := 0, doff, soff; i < n; i, dp, sp = i+1, dp+dstep, sp+sstep {
		dst[dp] = src[sp]
	}
}

func (scalarKernels[T]) Zip(dst []T, doff, dstep int, src []T, soff, sstep, n int, fn func(a, b T) T) {
	for i, dp, sp := 0, doff, soff; i < n; i, dp, sp = i+1, dp+dstep, sp+sstep {
		dst[dp] = fn(dst[dp], src[sp])
	}
}

func (scalarKernels[T]) Dot(a []T, aoff, astep int, b []T, boff, bstep, n int) T {
	var s T
	for i, ap, bp := 0, aoff, boff; i < n; i, ap, bp = i+1, ap+astep, bp+bstep {
		s += a[ap] * b[bp]
	}
	return s
}

func (scalarKernels[T]) Axpy(alpha T, x []T, xoff, xstep int, y []T, yoff, ystep, n int) {
	for i, xp, yp := 0, xoff, yoff; i < n; i, xp, yp = i+1, xp+xstep, yp+ystep {
		y[yp] += alpha * x[xp]
	}
}

// unrolledKernels processes unit-step segments four lanes at a time and
// falls back to the scalar loop for any other step.
type unrolledKernels[T DType] struct {
	scalar scalarKernels[T]
}

const lanes = 4

func (k unrolledKernels[T]) Fill(d []T, off, step, n int, v T) {
	if step != 1 {
		k.scalar.Fill(d, off, step, n, v)
		return
	}
	s := d[off : off+n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		s[i], s[i+1], s[i+2], s[i+3] = v, v, v, v
	}
	for ; i < n; i++ {
		s[i] = v
	}
}

func (k unrolledKernels[T]) Sum(d []T, off, step, n int) T {
	if step != 1 {
		return k.scalar.Sum(d, off, step, n)
	}
	s := d[off : off+n]
	var a0, a1, a2, a3 T
	i := 0
	for ; i+lanes <= n; i += lanes {
		a0 += s[i]
		a1 += s[i+1]
		a2 += s[i+2]
		a3 += s[i+3]
	}
	for ; i < n; i++ {
		a0 += s[i]
	}
	return (a0 + a1) + (a2 + a3)
}

func (k unrolledKernels[T]) Map(d []T, off, step, n int, fn func(T) T) {
	if step != 1 {
		k.scalar.Map(d, off, step, n, fn)
		return
	}
	s := d[off : off+n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		s[i], s[i+1], s[i+2], s[i+3] = fn(s[i]), fn(s[i+1]), fn(s[i+2]), fn(s[i+3])
	}
	for ; i < n; i++ {
		s[i] = fn(s[i])
	}
}

func (k unrolledKernels[T]) Copy(dst []T, doff, dstep int, src []T, soff, sstep, n int) {
	k.scalar.Copy(dst, doff, dstep, src, soff, sstep, n)
}

func (k unrolledKernels[T]) Zip(dst []T, doff, dstep int, src []T, soff, sstep, n int, fn func(a, b T) T) {
	if dstep != 1 || sstep != 1 {
		k.scalar.Zip(dst, doff, dstep, src, soff, sstep, n, fn)
		return
	}
	d, s := dst[doff:doff+n], src[soff:soff+n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		d[i] = fn(d[i], s[i])
		d[i+1] = fn(d[i+1], s[i+1])
		d[i+2] = fn(d[i+2], s[i+2])
		d[i+3] = fn(d[i+3], s[i+3])
	}
	for ; i < n; i++ {
		d[i] = fn(d[i], s[i])
	}
}

func (k unrolledKernels[T]) Dot(a []T, aoff, astep int, b []T, boff, bstep, n int) T {
	if astep != 1 || bstep != 1 {
		return k.scalar.Dot(a, aoff, astep, b, boff, bstep, n)
	}
	x, y := a[aoff:aoff+n], b[boff:boff+n]
	var s0, s1, s2, s3 T
	i := 0
	for ; i+lanes <= n; i += lanes {
		s0 += x[i] * y[i]
		s1 += x[i+1] * y[i+1]
		s2 += x[i+2] * y[i+2]
		s3 += x[i+3] * y[i+3]
	}
	for ; i < n; i++ {
		s0 += x[i] * y[i]
	}
	return (s0 + s1) + (s2 + s3)
}

func (k unrolledKernels[T]) Axpy(alpha T, x []T, xoff, xstep int, y []T, yoff, ystep, n int) {
	if xstep != 1 || ystep != 1 {
		k.scalar.Axpy(alpha, x, xoff, xstep, y, yoff, ystep, n)
		return
	}
	xs, ys := x[xoff:xoff+n], y[yoff:yoff+n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		ys[i] += alpha * xs[i]
		ys[i+1] += alpha * xs[i+1]
		ys[i+2] += alpha * xs[i+2]
		ys[i+3] += alpha * xs[i+3]
	}
	for ; i < n; i++ {
		ys[i] += alpha * xs[i]
	}
}
