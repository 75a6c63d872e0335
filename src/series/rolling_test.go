package series

import (
	"errors"
	"testing"
)

// -----------------------------------------------------------------------------

func TestRollingMeanWindowTwo(t *testing.T) {
	s := mustSeries(t, []float64{100, 102, 101, 105, 103})

	sma, err := s.RollingMean(2)
	if err != nil {
		t.Fatalf("RollingMean failed: %v", err)
	}

	if _, ok := sma.At(0); ok {
		t.Fatalf("position 0 should be undefined (warm-up)")
	}

	want := []float64{101, 101.5, 103, 104}
	for i, w := range want {
		v, ok := sma.At(i + 1)
		if !ok || !approx(v, w) {
			t.Fatalf("sma[%d] = (%f, %v), want %f", i+1, v, ok, w)
		}
	}
}

// -----------------------------------------------------------------------------

func TestRollingRejectsInvalidWindow(t *testing.T) {
	s := mustSeries(t, []float64{1, 2, 3})
	if _, err := s.RollingMean(0); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestRollingSkipsUndefinedInputs(t *testing.T) {
	s, _ := NewWithValidity([]int64{1, 2, 3, 4}, []float64{1, 2, 3, 4}, []bool{true, false, true, true})

	mean, err := s.RollingMean(2)
	if err != nil {
		t.Fatalf("RollingMean failed: %v", err)
	}

	// Windows [0,1] and [1,2] both contain the undefined input.
	if _, ok := mean.At(1); ok {
		t.Fatalf("window over undefined input should stay undefined")
	}
	if _, ok := mean.At(2); ok {
		t.Fatalf("window over undefined input should stay undefined")
	}
	if v, ok := mean.At(3); !ok || !approx(v, 3.5) {
		t.Fatalf("mean[3] = (%f, %v), want 3.5", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestRollingStdSampleDenominator(t *testing.T) {
	s := mustSeries(t, []float64{1, 3, 5})

	std, err := s.RollingStd(3)
	if err != nil {
		t.Fatalf("RollingStd failed: %v", err)
	}

	// Sample std of {1,3,5} is 2 (variance (4+0+4)/2).
	if v, ok := std.At(2); !ok || !approx(v, 2) {
		t.Fatalf("std[2] = (%f, %v), want 2", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestRollingStdWindowOneUndefined(t *testing.T) {
	s := mustSeries(t, []float64{1, 2, 3})

	std, err := s.RollingStd(1)
	if err != nil {
		t.Fatalf("RollingStd failed: %v", err)
	}
	if std.DefinedCount() != 0 {
		t.Fatalf("window-1 std should be entirely undefined, got %d defined", std.DefinedCount())
	}
}

// -----------------------------------------------------------------------------

func TestRollingMinMax(t *testing.T) {
	s := mustSeries(t, []float64{3, 1, 4, 1, 5})

	min, _ := s.RollingMin(3)
	max, _ := s.RollingMax(3)

	if v, ok := min.At(2); !ok || v != 1 {
		t.Fatalf("min[2] = (%f, %v), want 1", v, ok)
	}
	if v, ok := max.At(4); !ok || v != 5 {
		t.Fatalf("max[4] = (%f, %v), want 5", v, ok)
	}
	if v, ok := max.At(3); !ok || v != 4 {
		t.Fatalf("max[3] = (%f, %v), want 4", v, ok)
	}
}
