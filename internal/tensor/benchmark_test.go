package tensor

import (
	"testing"
)

func benchmarkTensor(b *testing.B, backend *MockBackend, dims ...int) *Tensor[float32, *MockBackend] {
	b.Helper()
	x, err := Seq[float32](0, 1, MustShape(dims...).Size(), backend)
	if err != nil {
		b.Fatal(err)
	}
	y, err := x.Reshape(MustShape(dims...), C)
	if err != nil {
		b.Fatal(err)
	}
	return y
}

func BenchmarkCopy_Transposed(b *testing.B) {
	x := benchmarkTensor(b, NewMockBackend(), 512, 512).T()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.Copy(C); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCopy_Tiled(b *testing.B) {
	x := benchmarkTensor(b, &MockBackend{Threshold: 1 << 10}, 512, 512).T()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.Copy(C); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSum(b *testing.B) {
	for _, vector := range []bool{false, true} {
		name := "scalar"
		if vector {
			name = "unrolled"
		}
		b.Run(name, func(b *testing.B) {
			x := benchmarkTensor(b, &MockBackend{Vector: vector}, 1024, 1024)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = x.Sum()
			}
		})
	}
}

func BenchmarkStats(b *testing.B) {
	x := benchmarkTensor(b, NewMockBackend(), 1024, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.Stats(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMm(b *testing.B) {
	backend := &MockBackend{Vector: true}
	x := benchmarkTensor(b, backend, 128, 128)
	y := benchmarkTensor(b, backend, 128, 128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.Mm(y); err != nil {
			b.Fatal(err)
		}
	}
}
