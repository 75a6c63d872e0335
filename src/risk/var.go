package risk

import (
	"fmt"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// ValueAtRisk computes the historical VaR of a return series at the given
// confidence level: the (1-confidence)-quantile of the return distribution,
// reported as a percentage. The quantile uses linear interpolation between
// order statistics (h = (n-1)·q).
func ValueAtRisk(returns series.TimeSeries, confidence float64) (float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, fmt.Errorf("VaR confidence must be in (0, 1), got %f", confidence)
	}

	values := returns.DefinedValues()
	q, err := series.Quantile(values, 1-confidence)
	if err != nil {
		return 0, fmt.Errorf("VaR: %w", err)
	}
	return q * 100, nil
}
