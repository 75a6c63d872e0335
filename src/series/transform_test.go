package series

import (
	"testing"
)

// -----------------------------------------------------------------------------

func TestEWMSeedAndRecursion(t *testing.T) {
	s := mustSeries(t, []float64{10, 20, 30})

	ewm, err := s.EWM(3) // alpha = 0.5
	if err != nil {
		t.Fatalf("EWM failed: %v", err)
	}

	if v, ok := ewm.At(0); !ok || !approx(v, 10) {
		t.Fatalf("ewm[0] = (%f, %v), want seed 10", v, ok)
	}
	if v, _ := ewm.At(1); !approx(v, 15) { // 0.5*20 + 0.5*10
		t.Fatalf("ewm[1] = %f, want 15", v)
	}
	if v, _ := ewm.At(2); !approx(v, 22.5) { // 0.5*30 + 0.5*15
		t.Fatalf("ewm[2] = %f, want 22.5", v)
	}
}

// -----------------------------------------------------------------------------

func TestEWMUndefinedDoesNotAdvanceState(t *testing.T) {
	s, _ := NewWithValidity([]int64{1, 2, 3}, []float64{10, 99, 20}, []bool{true, false, true})

	ewm, err := s.EWM(3)
	if err != nil {
		t.Fatalf("EWM failed: %v", err)
	}

	if _, ok := ewm.At(1); ok {
		t.Fatalf("undefined input should stay undefined")
	}
	// Position 2 smooths against the state from position 0, not the gap.
	if v, _ := ewm.At(2); !approx(v, 15) {
		t.Fatalf("ewm[2] = %f, want 15", v)
	}
}

// -----------------------------------------------------------------------------

func TestPctChange(t *testing.T) {
	s := mustSeries(t, []float64{100, 110, 99})

	pct := s.PctChange()
	if pct.Len() != 2 {
		t.Fatalf("PctChange length = %d, want 2", pct.Len())
	}
	if v, _ := pct.At(0); !approx(v, 0.1) {
		t.Fatalf("pct[0] = %f, want 0.1", v)
	}
	if v, _ := pct.At(1); !approx(v, -0.1) {
		t.Fatalf("pct[1] = %f, want -0.1", v)
	}
	if pct.Timestamp(0) != 2 {
		t.Fatalf("pct keeps the later timestamp, got %d", pct.Timestamp(0))
	}
}

// -----------------------------------------------------------------------------

func TestPctChangeZeroPredecessor(t *testing.T) {
	s := mustSeries(t, []float64{0, 5, 10})

	pct := s.PctChange()
	if _, ok := pct.At(0); ok {
		t.Fatalf("division by zero predecessor should be undefined")
	}
	if v, ok := pct.At(1); !ok || !approx(v, 1) {
		t.Fatalf("pct[1] = (%f, %v), want 1", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestCumMax(t *testing.T) {
	s := mustSeries(t, []float64{3, 1, 4, 2, 5})

	cm := s.CumMax()
	want := []float64{3, 3, 4, 4, 5}
	for i, w := range want {
		if v, ok := cm.At(i); !ok || !approx(v, w) {
			t.Fatalf("cummax[%d] = (%f, %v), want %f", i, v, ok, w)
		}
	}
}

// -----------------------------------------------------------------------------

func TestCumProd(t *testing.T) {
	s := mustSeries(t, []float64{2, 3, 0.5})

	cp := s.CumProd()
	want := []float64{2, 6, 3}
	for i, w := range want {
		if v, ok := cp.At(i); !ok || !approx(v, w) {
			t.Fatalf("cumprod[%d] = (%f, %v), want %f", i, v, ok, w)
		}
	}
}

// -----------------------------------------------------------------------------

func TestScalarAndZipOperations(t *testing.T) {
	a := mustSeries(t, []float64{1, 2, 3})
	b := mustSeries(t, []float64{10, 20, 30})

	sum := a.Add(b)
	if v, _ := sum.At(2); !approx(v, 33) {
		t.Fatalf("add[2] = %f, want 33", v)
	}

	diff := b.Sub(a)
	if v, _ := diff.At(0); !approx(v, 9) {
		t.Fatalf("sub[0] = %f, want 9", v)
	}

	scaled := a.Scale(10).AddScalar(-5)
	if v, _ := scaled.At(1); !approx(v, 15) {
		t.Fatalf("scale+add[1] = %f, want 15", v)
	}
}
