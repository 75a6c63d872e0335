package indicators

import (
	"stock-insight/src/models"
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------
// Bar-to-series conversion. Bars are expected in ascending timestamp order
// (the data source guarantees it); the series constructors re-check.
// -----------------------------------------------------------------------------

// CloseSeries extracts the close prices of a bar slice as a TimeSeries.
func CloseSeries(bars []models.MOHLCVBar) (series.TimeSeries, error) {
	return barField(bars, func(b models.MOHLCVBar) float64 { return b.Close })
}

// HighSeries extracts the high prices of a bar slice as a TimeSeries.
func HighSeries(bars []models.MOHLCVBar) (series.TimeSeries, error) {
	return barField(bars, func(b models.MOHLCVBar) float64 { return b.High })
}

// LowSeries extracts the low prices of a bar slice as a TimeSeries.
func LowSeries(bars []models.MOHLCVBar) (series.TimeSeries, error) {
	return barField(bars, func(b models.MOHLCVBar) float64 { return b.Low })
}

// VolumeSeries extracts the volumes of a bar slice as a TimeSeries.
func VolumeSeries(bars []models.MOHLCVBar) (series.TimeSeries, error) {
	return barField(bars, func(b models.MOHLCVBar) float64 { return b.Volume })
}

// -----------------------------------------------------------------------------

func barField(bars []models.MOHLCVBar, field func(models.MOHLCVBar) float64) (series.TimeSeries, error) {
	ts := make([]int64, len(bars))
	vs := make([]float64, len(bars))
	for i, b := range bars {
		ts[i] = b.Timestamp
		vs[i] = field(b)
	}
	return series.New(ts, vs)
}
