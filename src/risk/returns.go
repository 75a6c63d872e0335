package risk

import (
	"stock-insight/src/series"
)

// TradingDaysPerYear is the conventional annualization base for daily bars.
const TradingDaysPerYear = 252

// -----------------------------------------------------------------------------

// Returns derives the daily return series from a price series by percentage
// change. The leading point is dropped: the result is one element shorter
// than the input.
func Returns(prices series.TimeSeries) series.TimeSeries {
	return prices.PctChange()
}

// -----------------------------------------------------------------------------

// CumulativeReturns compounds a return series into growth-from-start:
// (1+r[0])·...·(1+r[i]) - 1 at each position.
func CumulativeReturns(returns series.TimeSeries) series.TimeSeries {
	return returns.AddScalar(1).CumProd().AddScalar(-1)
}
