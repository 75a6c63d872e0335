package indicators

import (
	"fmt"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// BollingerResult holds the three aligned band series.
type BollingerResult struct {
	Upper  series.TimeSeries
	Middle series.TimeSeries
	Lower  series.TimeSeries
}

// -----------------------------------------------------------------------------

// BollingerBands computes middle = SMA(window) and upper/lower = middle ±
// k·rollingStd(window). The first window-1 positions are undefined.
func BollingerBands(prices series.TimeSeries, window int, k float64) (*BollingerResult, error) {
	if k < 0 {
		return nil, fmt.Errorf("bollinger: band width k cannot be negative, got %f", k)
	}

	middle, err := prices.RollingMean(window)
	if err != nil {
		return nil, err
	}
	std, err := prices.RollingStd(window)
	if err != nil {
		return nil, err
	}

	spread := std.Scale(k)
	return &BollingerResult{
		Upper:  middle.Add(spread),
		Middle: middle,
		Lower:  middle.Sub(spread),
	}, nil
}
