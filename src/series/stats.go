package series

import (
	"fmt"
	"math"
	"sort"
)

// -----------------------------------------------------------------------------
// Descriptive statistics over plain value slices. Sample (N-1) denominators
// throughout. Degenerate inputs report ok=false instead of producing NaN.
// -----------------------------------------------------------------------------

// Mean computes the arithmetic mean. Empty input returns 0.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// -----------------------------------------------------------------------------

// SampleVariance computes the variance with N-1 denominator. Needs at least
// two observations.
func SampleVariance(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	mean := Mean(xs)
	sumSq := 0.0
	for _, v := range xs {
		sumSq += (v - mean) * (v - mean)
	}
	return sumSq / float64(len(xs)-1), true
}

// -----------------------------------------------------------------------------

// SampleStd computes the standard deviation with N-1 denominator.
func SampleStd(xs []float64) (float64, bool) {
	v, ok := SampleVariance(xs)
	if !ok {
		return 0, false
	}
	return math.Sqrt(v), true
}

// -----------------------------------------------------------------------------

// SampleCovariance computes the covariance with N-1 denominator over two
// equal-length slices.
func SampleCovariance(xs, ys []float64) (float64, bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, false
	}
	mx := Mean(xs)
	my := Mean(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1), true
}

// -----------------------------------------------------------------------------

// PearsonCorrelation computes the correlation coefficient. Zero variance on
// either side reports ok=false.
func PearsonCorrelation(xs, ys []float64) (float64, bool) {
	cov, ok := SampleCovariance(xs, ys)
	if !ok {
		return 0, false
	}
	vx, _ := SampleVariance(xs)
	vy, _ := SampleVariance(ys)
	if vx == 0 || vy == 0 {
		return 0, false
	}
	r := cov / math.Sqrt(vx*vy)
	// Guard rounding drift past the mathematical bounds.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

// -----------------------------------------------------------------------------

// Quantile computes the q-quantile (q in [0,1]) by linear interpolation
// between order statistics: h = (n-1)*q, interpolated between floor(h) and
// floor(h)+1.
func Quantile(xs []float64, q float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("quantile of empty slice")
	}
	if q < 0 || q > 1 {
		return 0, fmt.Errorf("quantile fraction %f outside [0,1]", q)
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], nil
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}
