package indicators

import (
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// RSI computes the Relative Strength Index over simple rolling means of gains
// and losses. The output shares the input's time index; the first `window`
// positions are undefined (the leading delta does not exist).
//
// Division by zero is handled explicitly: a zero average loss means RSI=100
// exactly, which also covers a completely flat window. A zero average gain
// with nonzero losses yields RSI=0 by the formula.
func RSI(prices series.TimeSeries, window int) (series.TimeSeries, error) {
	if window < 1 {
		return series.TimeSeries{}, series.ErrInvalidWindow
	}

	n := prices.Len()
	timestamps := make([]int64, n)
	gains := make([]float64, n)
	losses := make([]float64, n)
	valid := make([]bool, n)

	for i := 0; i < n; i++ {
		timestamps[i] = prices.Timestamp(i)
		if i == 0 {
			continue
		}
		cur, okCur := prices.At(i)
		prev, okPrev := prices.At(i - 1)
		if !okCur || !okPrev {
			continue
		}
		delta := cur - prev
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
		valid[i] = true
	}

	gainSeries, err := series.NewWithValidity(timestamps, gains, valid)
	if err != nil {
		return series.TimeSeries{}, err
	}
	lossSeries, err := series.NewWithValidity(timestamps, losses, valid)
	if err != nil {
		return series.TimeSeries{}, err
	}

	avgGain, err := gainSeries.RollingMean(window)
	if err != nil {
		return series.TimeSeries{}, err
	}
	avgLoss, err := lossSeries.RollingMean(window)
	if err != nil {
		return series.TimeSeries{}, err
	}

	out := make([]float64, n)
	outValid := make([]bool, n)
	for i := 0; i < n; i++ {
		g, okG := avgGain.At(i)
		l, okL := avgLoss.At(i)
		if !okG || !okL {
			continue
		}
		if l == 0 {
			out[i] = 100
		} else {
			rs := g / l
			out[i] = 100 - 100/(1+rs)
		}
		outValid[i] = true
	}

	return series.NewWithValidity(timestamps, out, outValid)
}
