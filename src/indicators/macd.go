package indicators

import (
	"fmt"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// MACDResult holds the three aligned MACD output series.
type MACDResult struct {
	Line      series.TimeSeries
	Signal    series.TimeSeries
	Histogram series.TimeSeries
}

// -----------------------------------------------------------------------------

// MACD computes the Moving Average Convergence Divergence:
// line = EMA(fast) - EMA(slow), signal = EMA(line, span=signalSpan),
// histogram = line - signal. All three share the input's time index and are
// defined from the first defined input onward (EMAs have no warm-up gap).
func MACD(prices series.TimeSeries, fast, slow, signalSpan int) (*MACDResult, error) {
	if fast >= slow {
		return nil, fmt.Errorf("macd: fast span %d must be smaller than slow span %d", fast, slow)
	}

	emaFast, err := prices.EWM(fast)
	if err != nil {
		return nil, err
	}
	emaSlow, err := prices.EWM(slow)
	if err != nil {
		return nil, err
	}

	line := emaFast.Sub(emaSlow)
	signal, err := line.EWM(signalSpan)
	if err != nil {
		return nil, err
	}

	return &MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: line.Sub(signal),
	}, nil
}
