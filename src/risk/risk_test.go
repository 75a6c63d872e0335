package risk

import (
	"errors"
	"math"
	"testing"
	"time"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

func dailySeries(t *testing.T, start time.Time, values []float64) series.TimeSeries {
	t.Helper()
	ts := make([]int64, len(values))
	for i := range ts {
		ts[i] = start.AddDate(0, 0, i).Unix()
	}
	s, err := series.New(ts, values)
	if err != nil {
		t.Fatalf("series.New failed: %v", err)
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var monday = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// -----------------------------------------------------------------------------

func TestReturns(t *testing.T) {
	prices := dailySeries(t, monday, []float64{100, 110, 99})

	returns := Returns(prices)
	if returns.Len() != 2 {
		t.Fatalf("returns length = %d, want 2", returns.Len())
	}
	if v, _ := returns.At(0); !approx(v, 0.1) {
		t.Fatalf("returns[0] = %f, want 0.1", v)
	}
	if v, _ := returns.At(1); !approx(v, -0.1) {
		t.Fatalf("returns[1] = %f, want -0.1", v)
	}
}

// -----------------------------------------------------------------------------

func TestCumulativeReturns(t *testing.T) {
	prices := dailySeries(t, monday, []float64{100, 110, 99})

	cum := CumulativeReturns(Returns(prices))
	// (1.1)(0.9) - 1 = -0.01
	if v, ok := cum.At(1); !ok || !approx(v, -0.01) {
		t.Fatalf("cumulative[1] = (%f, %v), want -0.01", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestSharpeRatioDegenerate(t *testing.T) {
	constant := dailySeries(t, monday, []float64{0.01, 0.01, 0.01})

	// Constant returns have zero excess-return std.
	if _, ok := SharpeRatio(constant, 0.02); ok {
		t.Fatalf("constant returns should report ok=false")
	}

	short := dailySeries(t, monday, []float64{100, 101})
	if _, ok := SharpeRatio(Returns(short), 0.02); ok {
		t.Fatalf("single return should report ok=false")
	}
}

// -----------------------------------------------------------------------------

func TestSharpeRatioSign(t *testing.T) {
	rising := dailySeries(t, monday, []float64{100, 102, 103, 106, 107, 110})

	sharpe, ok := SharpeRatio(Returns(rising), 0.0)
	if !ok {
		t.Fatalf("expected a defined Sharpe ratio")
	}
	if sharpe <= 0 {
		t.Fatalf("rising series Sharpe = %f, want > 0", sharpe)
	}
}

// -----------------------------------------------------------------------------

func TestMaxDrawdown(t *testing.T) {
	prices := dailySeries(t, monday, []float64{100, 120, 90, 105, 110})

	worst, drawdown, ok := MaxDrawdown(prices)
	if !ok {
		t.Fatalf("expected a defined drawdown")
	}
	// Peak 120 to trough 90 is -25%.
	if !approx(worst, -25) {
		t.Fatalf("max drawdown = %f, want -25", worst)
	}
	if v, _ := drawdown.At(1); !approx(v, 0) {
		t.Fatalf("drawdown at the running peak = %f, want 0", v)
	}
	if v, _ := drawdown.At(3); !approx(v, -12.5) {
		t.Fatalf("drawdown[3] = %f, want -12.5", v)
	}
}

// -----------------------------------------------------------------------------

func TestBetaAgainstItself(t *testing.T) {
	prices := dailySeries(t, monday, []float64{100, 102, 99, 104, 101, 105})
	returns := Returns(prices)

	beta, ok, err := Beta(returns, returns)
	if err != nil || !ok {
		t.Fatalf("Beta = (%v, %v), want defined", ok, err)
	}
	if !approx(beta, 1) {
		t.Fatalf("beta vs itself = %f, want 1", beta)
	}
}

// -----------------------------------------------------------------------------

func TestBetaNoOverlap(t *testing.T) {
	a := Returns(dailySeries(t, monday, []float64{100, 101, 102}))
	b := Returns(dailySeries(t, monday.AddDate(1, 0, 0), []float64{50, 51, 52}))

	if _, _, err := Beta(a, b); !errors.Is(err, series.ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestValueAtRisk(t *testing.T) {
	values := []float64{-0.05, -0.02, 0.01, 0.03, 0.04, -0.01, 0.02, -0.03, 0.0, 0.01}
	ts := make([]int64, len(values))
	for i := range ts {
		ts[i] = int64(i + 1)
	}
	returns, _ := series.New(ts, values)

	vaR, err := ValueAtRisk(returns, 0.95)
	if err != nil {
		t.Fatalf("ValueAtRisk failed: %v", err)
	}
	if !approx(vaR, -4.1) {
		t.Fatalf("VaR(95%%) = %f, want -4.1", vaR)
	}

	if _, err := ValueAtRisk(returns, 1.0); err == nil {
		t.Fatalf("expected error on confidence outside (0, 1)")
	}
}

// -----------------------------------------------------------------------------

func TestSeasonalityByWeekday(t *testing.T) {
	// Two weeks of identical weekday patterns starting on a Monday.
	values := []float64{0.01, -0.01, 0.02, 0.0, 0.03, 0.01, -0.01, 0.02, 0.0, 0.03}
	ts := make([]int64, len(values))
	day := monday
	for i := range ts {
		ts[i] = day.Unix()
		day = day.AddDate(0, 0, 1)
		// Skip weekends so only Mon-Fri buckets appear.
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
	}
	returns, err := series.New(ts, values)
	if err != nil {
		t.Fatalf("series.New failed: %v", err)
	}

	buckets := Seasonality(returns, ByWeekday)
	if len(buckets) != 5 {
		t.Fatalf("got %d buckets, want 5 weekdays", len(buckets))
	}
	if buckets[0].Label != "Mon" {
		t.Fatalf("first bucket = %s, want Mon", buckets[0].Label)
	}
	// Both Mondays returned 1%, reported as percent.
	if !approx(buckets[0].Mean, 1) {
		t.Fatalf("Monday mean = %f, want 1", buckets[0].Mean)
	}
	// Fridays returned 3%.
	if buckets[4].Label != "Fri" || !approx(buckets[4].Mean, 3) {
		t.Fatalf("Friday bucket = %+v, want mean 3", buckets[4])
	}
}

// -----------------------------------------------------------------------------

func TestSeasonalityByMonth(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	returns, err := series.New(
		[]int64{jan.Unix(), jan.AddDate(0, 0, 1).Unix(), feb.Unix()},
		[]float64{0.01, 0.03, -0.02},
	)
	if err != nil {
		t.Fatalf("series.New failed: %v", err)
	}

	buckets := Seasonality(returns, ByMonth)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2 (Jan, Feb)", len(buckets))
	}
	if buckets[0].Label != "Jan" || !approx(buckets[0].Mean, 2) {
		t.Fatalf("Jan bucket = %+v, want mean 2", buckets[0])
	}
	if buckets[1].Label != "Feb" || !approx(buckets[1].Mean, -2) {
		t.Fatalf("Feb bucket = %+v, want mean -2", buckets[1])
	}
}
