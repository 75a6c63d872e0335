package indicators

import (
	"stock-insight/src/models"
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// Level marks a bar whose extreme is a local support or resistance point.
type Level struct {
	Timestamp int64
	Price     float64
}

// -----------------------------------------------------------------------------

// SupportResistance finds local extrema over a centered window of size
// 2·window+1: a bar's low is a support point iff it is the minimum low of the
// window, and a bar's high is a resistance point iff it is the maximum high.
// Bars near either end without a full centered window are excluded.
func SupportResistance(bars []models.MOHLCVBar, window int) (support, resistance []Level, err error) {
	if window < 1 {
		return nil, nil, series.ErrInvalidWindow
	}

	for i := window; i < len(bars)-window; i++ {
		isSupport := true
		isResistance := true
		for j := i - window; j <= i+window; j++ {
			if bars[j].Low < bars[i].Low {
				isSupport = false
			}
			if bars[j].High > bars[i].High {
				isResistance = false
			}
			if !isSupport && !isResistance {
				break
			}
		}
		if isSupport {
			support = append(support, Level{Timestamp: bars[i].Timestamp, Price: bars[i].Low})
		}
		if isResistance {
			resistance = append(resistance, Level{Timestamp: bars[i].Timestamp, Price: bars[i].High})
		}
	}

	return support, resistance, nil
}
