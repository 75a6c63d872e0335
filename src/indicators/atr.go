package indicators

import (
	"math"

	"stock-insight/src/models"
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// ATR computes the Average True Range: the rolling mean over `period` of
// TR = max(high-low, |high-prevClose|, |low-prevClose|). The first bar has no
// previous close, so its true range is high-low; the ATR itself is undefined
// for the first period-1 positions.
func ATR(bars []models.MOHLCVBar, period int) (series.TimeSeries, error) {
	timestamps := make([]int64, len(bars))
	tr := make([]float64, len(bars))

	for i, b := range bars {
		timestamps[i] = b.Timestamp
		r := b.High - b.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			r = math.Max(r, math.Abs(b.High-prevClose))
			r = math.Max(r, math.Abs(b.Low-prevClose))
		}
		tr[i] = r
	}

	trSeries, err := series.New(timestamps, tr)
	if err != nil {
		return series.TimeSeries{}, err
	}
	return trSeries.RollingMean(period)
}
