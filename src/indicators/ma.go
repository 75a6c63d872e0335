package indicators

import (
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// MovingAverage is one SMA series tagged with its period.
type MovingAverage struct {
	Period int
	Values series.TimeSeries
}

// -----------------------------------------------------------------------------

// MovingAverages computes one simple moving average per period, each over the
// full input index with its own leading undefined gap. The result preserves
// the order of the periods argument.
func MovingAverages(prices series.TimeSeries, periods []int) ([]MovingAverage, error) {
	out := make([]MovingAverage, 0, len(periods))
	for _, p := range periods {
		sma, err := prices.RollingMean(p)
		if err != nil {
			return nil, err
		}
		out = append(out, MovingAverage{Period: p, Values: sma})
	}
	return out, nil
}
