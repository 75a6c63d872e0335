package series

import "math"

// -----------------------------------------------------------------------------
// Rolling (trailing-window) aggregates. Position i of the output covers input
// positions [i-w+1, i]; the first w-1 positions are undefined, as is any
// position whose window contains an undefined input. All windows are causal:
// no output position depends on later inputs.
// -----------------------------------------------------------------------------

// RollingMean computes the unweighted mean over a trailing window.
func (s TimeSeries) RollingMean(window int) (TimeSeries, error) {
	return s.rollingApply(window, func(win []float64) (float64, bool) {
		sum := 0.0
		for _, v := range win {
			sum += v
		}
		return sum / float64(len(win)), true
	})
}

// -----------------------------------------------------------------------------

// RollingStd computes the sample standard deviation (N-1 denominator) over a
// trailing window. A window of size 1 has no sample deviation, so every
// position is undefined in that case.
func (s TimeSeries) RollingStd(window int) (TimeSeries, error) {
	return s.rollingApply(window, func(win []float64) (float64, bool) {
		if len(win) < 2 {
			return 0, false
		}
		mean := 0.0
		for _, v := range win {
			mean += v
		}
		mean /= float64(len(win))

		sumSq := 0.0
		for _, v := range win {
			sumSq += (v - mean) * (v - mean)
		}
		return math.Sqrt(sumSq / float64(len(win)-1)), true
	})
}

// -----------------------------------------------------------------------------

// RollingMin computes the minimum over a trailing window.
func (s TimeSeries) RollingMin(window int) (TimeSeries, error) {
	return s.rollingApply(window, func(win []float64) (float64, bool) {
		min := win[0]
		for _, v := range win[1:] {
			if v < min {
				min = v
			}
		}
		return min, true
	})
}

// -----------------------------------------------------------------------------

// RollingMax computes the maximum over a trailing window.
func (s TimeSeries) RollingMax(window int) (TimeSeries, error) {
	return s.rollingApply(window, func(win []float64) (float64, bool) {
		max := win[0]
		for _, v := range win[1:] {
			if v > max {
				max = v
			}
		}
		return max, true
	})
}

// -----------------------------------------------------------------------------

func (s TimeSeries) rollingApply(window int, agg func([]float64) (float64, bool)) (TimeSeries, error) {
	if window < 1 {
		return TimeSeries{}, ErrInvalidWindow
	}

	n := s.Len()
	values := make([]float64, n)
	valid := make([]bool, n)
	win := make([]float64, 0, window)

	for i := window - 1; i < n; i++ {
		win = win[:0]
		complete := true
		for j := i - window + 1; j <= i; j++ {
			if !s.valid[j] {
				complete = false
				break
			}
			win = append(win, s.values[j])
		}
		if !complete {
			continue
		}
		if v, ok := agg(win); ok {
			values[i] = v
			valid[i] = true
		}
	}

	return derived(s.timestamps, values, valid), nil
}
