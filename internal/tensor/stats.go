package tensor

import (
	"fmt"
	"math"
)

// Statistics is an immutable summary of a floating point tensor.
// Variances are population variances; the sample forms apply Bessel's
// correction on read.
type Statistics struct {
	dtype       DataType
	size        int
	nanSize     int
	mean        float64
	nanMean     float64
	variance    float64
	nanVariance float64
}

// Stats computes size, mean and variance of t, with and without NaN
// elements, in three streaming passes:
//
//  1. raw sums give the first estimate of mean and nanMean;
//  2. the mean residual sum(x - mean)/n corrects the estimate;
//  3. sum2 = sum((x-mean)^2) and sum3 = sum(x-mean) give
//     variance = (sum2 - sum3^2/n) / n.
//
// An all-NaN tensor yields NaN nanMean and nanVariance. Integral tensors
// fail with ErrUnsupportedOperation.
func Stats[T DType, B Backend](t *Tensor[T, B]) (Statistics, error) {
	if !t.DType().IsFloat() {
		return Statistics{}, fmt.Errorf("stats on %s tensor: %w", t.DType(), ErrUnsupportedOperation)
	}
	lp := NewLoop(t.layout, S)
	d := t.storage.data
	each := func(fn func(x float64)) {
		for _, off := range lp.Offsets {
			for i, p := 0, off; i < lp.Size; i, p = i+1, p+lp.Step {
				fn(float64(d[p]))
			}
		}
	}

	size := float64(t.Size())
	var sum, nanSum float64
	nanSize := 0
	each(func(x float64) {
		sum += x
		if !math.IsNaN(x) {
			nanSum += x
			nanSize++
		}
	})
	n := float64(nanSize)
	mean := sum / size
	nanMean := nanSum / n

	var corr, nanCorr float64
	each(func(x float64) {
		corr += x - mean
		if !math.IsNaN(x) {
			nanCorr += x - nanMean
		}
	})
	mean += corr / size
	nanMean += nanCorr / n

	var sum2, sum3, nanSum2, nanSum3 float64
	each(func(x float64) {
		dx := x - mean
		sum2 += dx * dx
		sum3 += dx
		if !math.IsNaN(x) {
			dn := x - nanMean
			nanSum2 += dn * dn
			nanSum3 += dn
		}
	})

	return Statistics{
		dtype:       t.DType(),
		size:        t.Size(),
		nanSize:     nanSize,
		mean:        mean,
		nanMean:     nanMean,
		variance:    (sum2 - sum3*sum3/size) / size,
		nanVariance: (nanSum2 - nanSum3*nanSum3/n) / n,
	}, nil
}

// Stats is the method form of the package level Stats.
func (t *Tensor[T, B]) Stats() (Statistics, error) {
	return Stats(t)
}

// DType returns the element kind the statistics were computed from.
func (s Statistics) DType() DataType { return s.dtype }

// Size returns the number of elements.
func (s Statistics) Size() int { return s.size }

// NanSize returns the number of non-NaN elements.
func (s Statistics) NanSize() int { return s.nanSize }

// Mean returns the mean of all elements.
func (s Statistics) Mean() float64 { return s.mean }

// NanMean returns the mean of the non-NaN elements.
func (s Statistics) NanMean() float64 { return s.nanMean }

// Variance returns the population variance.
func (s Statistics) Variance() float64 { return s.variance }

// NanVariance returns the population variance of the non-NaN elements.
func (s Statistics) NanVariance() float64 { return s.nanVariance }

// Std returns the population standard deviation.
func (s Statistics) Std() float64 { return math.Sqrt(s.variance) }

// NanStd returns the population standard deviation of the non-NaN elements.
func (s Statistics) NanStd() float64 { return math.Sqrt(s.nanVariance) }

// SampleVariance returns variance * n/(n-1).
func (s Statistics) SampleVariance() float64 {
	return s.variance * float64(s.size) / float64(s.size-1)
}

// NanSampleVariance returns nanVariance * n/(n-1) over the non-NaN count.
func (s Statistics) NanSampleVariance() float64 {
	return s.nanVariance * float64(s.nanSize) / float64(s.nanSize-1)
}

// SampleStd returns the square root of SampleVariance.
func (s Statistics) SampleStd() float64 { return math.Sqrt(s.SampleVariance()) }

// NanSampleStd returns the square root of NanSampleVariance.
func (s Statistics) NanSampleStd() float64 { return math.Sqrt(s.NanSampleVariance()) }

// String renders the statistics as a short report.
func (s Statistics) String() string {
	return fmt.Sprintf("Statistics{dtype:%s, size:%d, nanSize:%d, mean:%g, nanMean:%g, variance:%g, nanVariance:%g}",
		s.dtype, s.size, s.nanSize, s.mean, s.nanMean, s.variance, s.nanVariance)
}
