package risk

import (
	"math"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// Volatility is the unannualized sample standard deviation of a return
// series. Callers wanting an annual figure multiply by sqrt(252) themselves;
// that scaling is a consumer policy, not part of the measure. Reports
// ok=false with fewer than two defined returns.
func Volatility(returns series.TimeSeries) (float64, bool) {
	return series.SampleStd(returns.DefinedValues())
}

// -----------------------------------------------------------------------------

// SharpeRatio computes the annualized Sharpe ratio of a daily return series
// against an annual risk-free rate. The rate is converted to a daily rate via
// (1+r)^(1/252)-1; the ratio is mean(excess)/std(excess)·sqrt(252).
// Zero or undefined std of excess returns reports ok=false.
func SharpeRatio(returns series.TimeSeries, annualRiskFreeRate float64) (float64, bool) {
	values := returns.DefinedValues()
	if len(values) == 0 {
		return 0, false
	}

	dailyRate := math.Pow(1+annualRiskFreeRate, 1.0/TradingDaysPerYear) - 1
	excess := make([]float64, len(values))
	for i, v := range values {
		excess[i] = v - dailyRate
	}

	std, ok := series.SampleStd(excess)
	if !ok || std == 0 {
		return 0, false
	}
	return series.Mean(excess) / std * math.Sqrt(TradingDaysPerYear), true
}

// -----------------------------------------------------------------------------

// MaxDrawdown computes the drawdown series, each position the percentage
// decline from the running price maximum, and its minimum as the maximum
// drawdown. Reports ok=false when the price series has no defined points.
func MaxDrawdown(prices series.TimeSeries) (float64, series.TimeSeries, bool) {
	rollingMax := prices.CumMax()

	n := prices.Len()
	timestamps := make([]int64, n)
	values := make([]float64, n)
	valid := make([]bool, n)

	worst := 0.0
	any := false
	for i := 0; i < n; i++ {
		timestamps[i] = prices.Timestamp(i)
		p, okP := prices.At(i)
		m, okM := rollingMax.At(i)
		if !okP || !okM || m == 0 {
			continue
		}
		dd := (p/m - 1) * 100
		values[i] = dd
		valid[i] = true
		if !any || dd < worst {
			worst = dd
			any = true
		}
	}

	drawdown, err := series.NewWithValidity(timestamps, values, valid)
	if err != nil {
		return 0, series.TimeSeries{}, false
	}
	return worst, drawdown, any
}

// -----------------------------------------------------------------------------

// Beta measures the sensitivity of an asset's returns to a benchmark's
// returns: cov(asset, market)/var(market) over their shared timestamps only.
// Non-overlapping dates are dropped; an empty overlap returns
// series.ErrNoOverlap. Zero market variance reports ok=false.
func Beta(assetReturns, marketReturns series.TimeSeries) (float64, bool, error) {
	asset, market, err := series.Align(assetReturns, marketReturns)
	if err != nil {
		return 0, false, err
	}

	assetValues := asset.DefinedValues()
	marketValues := market.DefinedValues()

	cov, okCov := series.SampleCovariance(assetValues, marketValues)
	variance, okVar := series.SampleVariance(marketValues)
	if !okCov || !okVar || variance == 0 {
		return 0, false, nil
	}
	return cov / variance, true, nil
}
