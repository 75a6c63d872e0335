package risk

import (
	"time"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// Grouping selects the calendar bucketing for seasonality analysis.
type Grouping int

const (
	ByMonth Grouping = iota
	ByWeekday
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Bucket is the mean return (in percent) of one calendar group.
type Bucket struct {
	Label string
	Mean  float64
}

// -----------------------------------------------------------------------------

// Seasonality groups a return series by calendar month or weekday (UTC) and
// reports the mean return per group ×100, in natural calendar order. Only
// groups present in the data are emitted.
func Seasonality(returns series.TimeSeries, grouping Grouping) []Bucket {
	sums := make(map[int]float64)
	counts := make(map[int]int)

	for i := 0; i < returns.Len(); i++ {
		v, ok := returns.At(i)
		if !ok {
			continue
		}
		t := time.Unix(returns.Timestamp(i), 0).UTC()

		var key int
		switch grouping {
		case ByWeekday:
			// time.Weekday puts Sunday first; rotate so Monday is 0.
			key = (int(t.Weekday()) + 6) % 7
		default:
			key = int(t.Month()) - 1
		}

		sums[key] += v
		counts[key]++
	}

	labels := monthLabels
	if grouping == ByWeekday {
		labels = weekdayLabels
	}

	var out []Bucket
	for key, label := range labels {
		if counts[key] == 0 {
			continue
		}
		out = append(out, Bucket{Label: label, Mean: sums[key] / float64(counts[key]) * 100})
	}
	return out
}
