package compare

import (
	"fmt"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// Matrix is a pairwise Pearson correlation matrix over asset returns.
// Symmetric with a unit diagonal; entries lie in [-1, 1]. Pairs whose
// correlation is undefined (zero return variance) are reported as 0, the same
// convention the presentation layer expects for "no measurable relationship".
type Matrix struct {
	Symbols []string
	Values  [][]float64
}

// -----------------------------------------------------------------------------

// CorrelationMatrix derives each asset's return series, inner-joins all of
// them on shared timestamps, and computes the full pairwise correlation
// matrix. Returns series.ErrNoOverlap when the joined index is empty.
func CorrelationMatrix(symbols []string, prices []series.TimeSeries) (*Matrix, error) {
	if len(symbols) != len(prices) {
		return nil, fmt.Errorf("compare: %d symbols but %d series", len(symbols), len(prices))
	}
	if len(symbols) < 2 {
		return nil, fmt.Errorf("compare: need at least two assets, got %d", len(symbols))
	}

	returns := make([]series.TimeSeries, len(prices))
	for i, p := range prices {
		returns[i] = p.PctChange()
	}

	aligned, err := series.AlignAll(returns)
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(symbols))
	for i := range values {
		values[i] = make([]float64, len(symbols))
		values[i][i] = 1
	}

	for i := 0; i < len(aligned); i++ {
		for j := i + 1; j < len(aligned); j++ {
			r, ok := series.PearsonCorrelation(aligned[i].DefinedValues(), aligned[j].DefinedValues())
			if !ok {
				r = 0
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	m := &Matrix{Symbols: make([]string, len(symbols)), Values: values}
	copy(m.Symbols, symbols)
	return m, nil
}

// -----------------------------------------------------------------------------

// NormalizeToFirst rescales a price series to percentage change from its
// first defined observation, for cross-asset visual comparison. Not a
// correlation input.
func NormalizeToFirst(prices series.TimeSeries) series.TimeSeries {
	first := 0.0
	seeded := false
	for i := 0; i < prices.Len(); i++ {
		if v, ok := prices.At(i); ok {
			first = v
			seeded = true
			break
		}
	}
	if !seeded || first == 0 {
		return prices.Scale(0)
	}
	return prices.Scale(100 / first).AddScalar(-100)
}
