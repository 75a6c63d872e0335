package series

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// TimeSeries is an ordered sequence of (timestamp, value) observations with
// strictly increasing timestamps. Positions may be undefined ("no value"):
// windowed operations leave their warm-up region undefined instead of failing.
// A TimeSeries is immutable once constructed; every operation returns a newly
// allocated series.
// -----------------------------------------------------------------------------

var (
	// ErrInvalidWindow reports a non-positive window or span parameter.
	ErrInvalidWindow = errors.New("window size must be positive")

	// ErrNoOverlap reports an empty inner join between series.
	ErrNoOverlap = errors.New("series share no timestamps")
)

type TimeSeries struct {
	timestamps []int64
	values     []float64
	valid      []bool
}

// -----------------------------------------------------------------------------

// New builds a fully-defined TimeSeries. Timestamps must be strictly
// increasing. Input slices are copied.
func New(timestamps []int64, values []float64) (TimeSeries, error) {
	if len(timestamps) != len(values) {
		return TimeSeries{}, fmt.Errorf("timestamps (%d) and values (%d) length mismatch", len(timestamps), len(values))
	}
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i] <= timestamps[i-1] {
			return TimeSeries{}, fmt.Errorf("timestamps must be strictly increasing (position %d)", i)
		}
	}

	ts := make([]int64, len(timestamps))
	vs := make([]float64, len(values))
	copy(ts, timestamps)
	copy(vs, values)

	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}

	return TimeSeries{timestamps: ts, values: vs, valid: valid}, nil
}

// -----------------------------------------------------------------------------

// NewWithValidity builds a TimeSeries with explicit per-position validity.
// Values at invalid positions are ignored.
func NewWithValidity(timestamps []int64, values []float64, valid []bool) (TimeSeries, error) {
	s, err := New(timestamps, values)
	if err != nil {
		return TimeSeries{}, err
	}
	if len(valid) != len(values) {
		return TimeSeries{}, fmt.Errorf("validity mask (%d) and values (%d) length mismatch", len(valid), len(values))
	}
	for i, ok := range valid {
		if !ok {
			s.valid[i] = false
			s.values[i] = 0
		}
	}
	return s, nil
}

// -----------------------------------------------------------------------------

// derived builds a series over an existing (already validated) time index.
// The timestamp slice is shared: series are immutable so this is safe.
func derived(timestamps []int64, values []float64, valid []bool) TimeSeries {
	return TimeSeries{timestamps: timestamps, values: values, valid: valid}
}

// -----------------------------------------------------------------------------

// Len returns the number of positions, defined or not.
func (s TimeSeries) Len() int {
	return len(s.values)
}

// -----------------------------------------------------------------------------

// Timestamp returns the timestamp at position i.
func (s TimeSeries) Timestamp(i int) int64 {
	return s.timestamps[i]
}

// -----------------------------------------------------------------------------

// At returns the value at position i and whether it is defined.
func (s TimeSeries) At(i int) (float64, bool) {
	if !s.valid[i] {
		return 0, false
	}
	return s.values[i], true
}

// -----------------------------------------------------------------------------

// Last returns the last defined value and its timestamp.
func (s TimeSeries) Last() (int64, float64, bool) {
	for i := len(s.values) - 1; i >= 0; i-- {
		if s.valid[i] {
			return s.timestamps[i], s.values[i], true
		}
	}
	return 0, 0, false
}

// -----------------------------------------------------------------------------

// DefinedCount returns the number of defined positions.
func (s TimeSeries) DefinedCount() int {
	n := 0
	for _, ok := range s.valid {
		if ok {
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------

// Defined returns copies of the timestamps and values of the defined positions.
func (s TimeSeries) Defined() ([]int64, []float64) {
	ts := make([]int64, 0, len(s.values))
	vs := make([]float64, 0, len(s.values))
	for i, ok := range s.valid {
		if ok {
			ts = append(ts, s.timestamps[i])
			vs = append(vs, s.values[i])
		}
	}
	return ts, vs
}

// -----------------------------------------------------------------------------

// DefinedValues returns the defined values in order.
func (s TimeSeries) DefinedValues() []float64 {
	_, vs := s.Defined()
	return vs
}

// -----------------------------------------------------------------------------

// Align inner-joins two series on timestamps where both are defined. The
// result pair shares one time index; non-overlapping positions are dropped.
// Returns ErrNoOverlap when the join is empty.
func Align(a, b TimeSeries) (TimeSeries, TimeSeries, error) {
	var ts []int64
	var av, bv []float64

	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		switch {
		case a.timestamps[i] < b.timestamps[j]:
			i++
		case a.timestamps[i] > b.timestamps[j]:
			j++
		default:
			if a.valid[i] && b.valid[j] {
				ts = append(ts, a.timestamps[i])
				av = append(av, a.values[i])
				bv = append(bv, b.values[j])
			}
			i++
			j++
		}
	}

	if len(ts) == 0 {
		return TimeSeries{}, TimeSeries{}, ErrNoOverlap
	}

	valid := make([]bool, len(ts))
	for k := range valid {
		valid[k] = true
	}
	return derived(ts, av, valid), derived(ts, bv, valid), nil
}

// -----------------------------------------------------------------------------

// AlignAll inner-joins any number of series on their shared timestamps.
// Returns ErrNoOverlap when the intersection is empty.
func AlignAll(list []TimeSeries) ([]TimeSeries, error) {
	if len(list) == 0 {
		return nil, nil
	}

	// Intersect timestamps across all series, defined positions only.
	shared := make(map[int64]int)
	for _, s := range list {
		for i, ok := range s.valid {
			if ok {
				shared[s.timestamps[i]]++
			}
		}
	}

	var ts []int64
	first := list[0]
	for i := range first.timestamps {
		if first.valid[i] && shared[first.timestamps[i]] == len(list) {
			ts = append(ts, first.timestamps[i])
		}
	}

	if len(ts) == 0 {
		return nil, ErrNoOverlap
	}

	valid := make([]bool, len(ts))
	for k := range valid {
		valid[k] = true
	}

	out := make([]TimeSeries, len(list))
	for n, s := range list {
		byTs := make(map[int64]float64, s.Len())
		for i, ok := range s.valid {
			if ok {
				byTs[s.timestamps[i]] = s.values[i]
			}
		}
		vs := make([]float64, len(ts))
		for k, t := range ts {
			vs[k] = byTs[t]
		}
		out[n] = derived(ts, vs, valid)
	}

	return out, nil
}
