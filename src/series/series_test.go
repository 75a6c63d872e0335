package series

import (
	"errors"
	"math"
	"testing"
)

// -----------------------------------------------------------------------------

func mustSeries(t *testing.T, values []float64) TimeSeries {
	t.Helper()
	ts := make([]int64, len(values))
	for i := range ts {
		ts[i] = int64(i + 1)
	}
	s, err := New(ts, values)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// -----------------------------------------------------------------------------

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New([]int64{1, 2}, []float64{1}); err == nil {
		t.Fatalf("expected error on length mismatch")
	}
	if _, err := New([]int64{1, 1}, []float64{1, 2}); err == nil {
		t.Fatalf("expected error on non-increasing timestamps")
	}
	if _, err := New([]int64{2, 1}, []float64{1, 2}); err == nil {
		t.Fatalf("expected error on decreasing timestamps")
	}
}

// -----------------------------------------------------------------------------

func TestAtAndValidity(t *testing.T) {
	s, err := NewWithValidity([]int64{1, 2, 3}, []float64{10, 20, 30}, []bool{true, false, true})
	if err != nil {
		t.Fatalf("NewWithValidity failed: %v", err)
	}

	if v, ok := s.At(0); !ok || v != 10 {
		t.Fatalf("At(0) = (%f, %v), want (10, true)", v, ok)
	}
	if _, ok := s.At(1); ok {
		t.Fatalf("At(1) should be undefined")
	}
	if s.DefinedCount() != 2 {
		t.Fatalf("DefinedCount = %d, want 2", s.DefinedCount())
	}
}

// -----------------------------------------------------------------------------

func TestLastSkipsUndefined(t *testing.T) {
	s, err := NewWithValidity([]int64{1, 2, 3}, []float64{10, 20, 30}, []bool{true, true, false})
	if err != nil {
		t.Fatalf("NewWithValidity failed: %v", err)
	}

	ts, v, ok := s.Last()
	if !ok || ts != 2 || v != 20 {
		t.Fatalf("Last = (%d, %f, %v), want (2, 20, true)", ts, v, ok)
	}

	empty, _ := NewWithValidity([]int64{1}, []float64{5}, []bool{false})
	if _, _, ok := empty.Last(); ok {
		t.Fatalf("Last on all-undefined series should report ok=false")
	}
}

// -----------------------------------------------------------------------------

func TestAlignInnerJoin(t *testing.T) {
	a, _ := New([]int64{1, 2, 3, 4}, []float64{10, 20, 30, 40})
	b, _ := New([]int64{2, 3, 5}, []float64{200, 300, 500})

	aa, bb, err := Align(a, b)
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if aa.Len() != 2 || bb.Len() != 2 {
		t.Fatalf("aligned lengths = (%d, %d), want (2, 2)", aa.Len(), bb.Len())
	}
	if v, _ := aa.At(0); v != 20 {
		t.Fatalf("aligned a[0] = %f, want 20", v)
	}
	if v, _ := bb.At(1); v != 300 {
		t.Fatalf("aligned b[1] = %f, want 300", v)
	}
}

// -----------------------------------------------------------------------------

func TestAlignNoOverlap(t *testing.T) {
	a, _ := New([]int64{1, 2}, []float64{1, 2})
	b, _ := New([]int64{3, 4}, []float64{3, 4})

	if _, _, err := Align(a, b); !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestAlignSkipsUndefinedPositions(t *testing.T) {
	a, _ := NewWithValidity([]int64{1, 2, 3}, []float64{1, 2, 3}, []bool{true, false, true})
	b, _ := New([]int64{1, 2, 3}, []float64{10, 20, 30})

	aa, _, err := Align(a, b)
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if aa.Len() != 2 {
		t.Fatalf("aligned length = %d, want 2 (undefined position dropped)", aa.Len())
	}
}

// -----------------------------------------------------------------------------

func TestAlignAll(t *testing.T) {
	a, _ := New([]int64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	b, _ := New([]int64{2, 3, 4}, []float64{20, 30, 40})
	c, _ := New([]int64{1, 3, 4, 9}, []float64{100, 300, 400, 900})

	out, err := AlignAll([]TimeSeries{a, b, c})
	if err != nil {
		t.Fatalf("AlignAll failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d series, want 3", len(out))
	}
	for _, s := range out {
		if s.Len() != 2 {
			t.Fatalf("aligned length = %d, want 2 (timestamps 3 and 4)", s.Len())
		}
	}
	if v, _ := out[2].At(0); v != 300 {
		t.Fatalf("third series [0] = %f, want 300", v)
	}
	if out[0].Timestamp(0) != 3 || out[0].Timestamp(1) != 4 {
		t.Fatalf("shared index = (%d, %d), want (3, 4)", out[0].Timestamp(0), out[0].Timestamp(1))
	}
}
