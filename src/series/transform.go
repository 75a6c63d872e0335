package series

// -----------------------------------------------------------------------------
// Pointwise and cumulative transforms. Every operation allocates a fresh
// series; cumulative scans depend only on prior positions.
// -----------------------------------------------------------------------------

// EWM computes the exponential weighted mean with smoothing factor
// alpha = 2/(span+1), seeded by the first defined value (the "adjust=false"
// convention). Defined from the first defined input onward; undefined inputs
// stay undefined and do not advance the smoothing state.
func (s TimeSeries) EWM(span int) (TimeSeries, error) {
	if span < 1 {
		return TimeSeries{}, ErrInvalidWindow
	}

	alpha := 2.0 / (float64(span) + 1.0)
	n := s.Len()
	values := make([]float64, n)
	valid := make([]bool, n)

	seeded := false
	state := 0.0
	for i := 0; i < n; i++ {
		if !s.valid[i] {
			continue
		}
		if !seeded {
			state = s.values[i]
			seeded = true
		} else {
			state = alpha*s.values[i] + (1-alpha)*state
		}
		values[i] = state
		valid[i] = true
	}

	return derived(s.timestamps, values, valid), nil
}

// -----------------------------------------------------------------------------

// PctChange returns v[i]/v[i-1] - 1 for i >= 1; the leading position is
// dropped, so the result is one element shorter than the input. Positions
// with an undefined or zero-valued predecessor are undefined.
func (s TimeSeries) PctChange() TimeSeries {
	n := s.Len()
	if n < 2 {
		return derived(nil, nil, nil)
	}

	values := make([]float64, n-1)
	valid := make([]bool, n-1)
	for i := 1; i < n; i++ {
		if s.valid[i] && s.valid[i-1] && s.values[i-1] != 0 {
			values[i-1] = s.values[i]/s.values[i-1] - 1
			valid[i-1] = true
		}
	}

	return derived(s.timestamps[1:], values, valid)
}

// -----------------------------------------------------------------------------

// CumMax returns the running maximum. Undefined positions stay undefined and
// do not reset the running state.
func (s TimeSeries) CumMax() TimeSeries {
	n := s.Len()
	values := make([]float64, n)
	valid := make([]bool, n)

	seeded := false
	max := 0.0
	for i := 0; i < n; i++ {
		if !s.valid[i] {
			continue
		}
		if !seeded || s.values[i] > max {
			max = s.values[i]
			seeded = true
		}
		values[i] = max
		valid[i] = true
	}

	return derived(s.timestamps, values, valid)
}

// -----------------------------------------------------------------------------

// CumProd returns the running product. Undefined positions stay undefined and
// do not reset the running state.
func (s TimeSeries) CumProd() TimeSeries {
	n := s.Len()
	values := make([]float64, n)
	valid := make([]bool, n)

	prod := 1.0
	for i := 0; i < n; i++ {
		if !s.valid[i] {
			continue
		}
		prod *= s.values[i]
		values[i] = prod
		valid[i] = true
	}

	return derived(s.timestamps, values, valid)
}

// -----------------------------------------------------------------------------

// AddScalar shifts every defined value by x.
func (s TimeSeries) AddScalar(x float64) TimeSeries {
	return s.mapValues(func(v float64) float64 { return v + x })
}

// Scale multiplies every defined value by k.
func (s TimeSeries) Scale(k float64) TimeSeries {
	return s.mapValues(func(v float64) float64 { return v * k })
}

// -----------------------------------------------------------------------------

func (s TimeSeries) mapValues(f func(float64) float64) TimeSeries {
	values := make([]float64, s.Len())
	valid := make([]bool, s.Len())
	for i, ok := range s.valid {
		if ok {
			values[i] = f(s.values[i])
			valid[i] = true
		}
	}
	return derived(s.timestamps, values, valid)
}

// -----------------------------------------------------------------------------

// Add returns the elementwise sum of two series sharing one time index.
// Positions undefined in either operand are undefined in the result.
func (s TimeSeries) Add(other TimeSeries) TimeSeries {
	return s.zip(other, func(a, b float64) float64 { return a + b })
}

// Sub returns the elementwise difference of two series sharing one time index.
func (s TimeSeries) Sub(other TimeSeries) TimeSeries {
	return s.zip(other, func(a, b float64) float64 { return a - b })
}

// -----------------------------------------------------------------------------

// zip assumes both series share the same time index (as produced by the
// indicator pipelines); it panics on length mismatch, which would indicate a
// programming error rather than bad data.
func (s TimeSeries) zip(other TimeSeries, f func(a, b float64) float64) TimeSeries {
	if s.Len() != other.Len() {
		panic("series: zip over mismatched indices")
	}
	values := make([]float64, s.Len())
	valid := make([]bool, s.Len())
	for i := range s.values {
		if s.valid[i] && other.valid[i] {
			values[i] = f(s.values[i], other.values[i])
			valid[i] = true
		}
	}
	return derived(s.timestamps, values, valid)
}
