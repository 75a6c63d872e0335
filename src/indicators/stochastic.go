package indicators

import (
	"stock-insight/src/models"
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// A flat window makes the %K denominator zero; this epsilon stands in so the
// oscillator stays defined instead of propagating an undefined position.
const stochasticEpsilon = 1e-5

// StochasticResult holds the %K and %D series.
type StochasticResult struct {
	K series.TimeSeries
	D series.TimeSeries
}

// -----------------------------------------------------------------------------

// Stochastic computes the stochastic oscillator:
// %K = 100·(close - min(low, kPeriod)) / (max(high, kPeriod) - min(low, kPeriod)),
// %D = SMA(%K, dPeriod). %K is undefined for the first kPeriod-1 positions and
// %D for dPeriod-1 more.
func Stochastic(bars []models.MOHLCVBar, kPeriod, dPeriod int) (*StochasticResult, error) {
	low, err := LowSeries(bars)
	if err != nil {
		return nil, err
	}
	high, err := HighSeries(bars)
	if err != nil {
		return nil, err
	}
	closeSeries, err := CloseSeries(bars)
	if err != nil {
		return nil, err
	}

	lowMin, err := low.RollingMin(kPeriod)
	if err != nil {
		return nil, err
	}
	highMax, err := high.RollingMax(kPeriod)
	if err != nil {
		return nil, err
	}

	n := closeSeries.Len()
	timestamps := make([]int64, n)
	kValues := make([]float64, n)
	kValid := make([]bool, n)

	for i := 0; i < n; i++ {
		timestamps[i] = closeSeries.Timestamp(i)
		lo, okLo := lowMin.At(i)
		hi, okHi := highMax.At(i)
		c, okC := closeSeries.At(i)
		if !okLo || !okHi || !okC {
			continue
		}
		denom := hi - lo
		if denom == 0 {
			denom = stochasticEpsilon
		}
		kValues[i] = 100 * (c - lo) / denom
		kValid[i] = true
	}

	k, err := series.NewWithValidity(timestamps, kValues, kValid)
	if err != nil {
		return nil, err
	}
	d, err := k.RollingMean(dPeriod)
	if err != nil {
		return nil, err
	}

	return &StochasticResult{K: k, D: d}, nil
}
