package models

// -----------------------------------------------------------------------------
// Analysis snapshot DTOs served over REST and pushed over the WebSocket.
// Undefined positions of the underlying series are dropped at this boundary;
// scalar results that can be undefined are pointers (null in JSON).
// -----------------------------------------------------------------------------

// MSeriesPoint is one defined (timestamp, value) observation.
type MSeriesPoint struct {
	Timestamp int64   `json:"t"`
	Value     float64 `json:"v"`
}

// -----------------------------------------------------------------------------

// MIndicatorSet groups the technical indicator outputs for one symbol.
type MIndicatorSet struct {
	RSI            []MSeriesPoint            `json:"rsi"`
	MACD           []MSeriesPoint            `json:"macd"`
	MACDSignal     []MSeriesPoint            `json:"macd_signal"`
	MACDHistogram  []MSeriesPoint            `json:"macd_hist"`
	BBUpper        []MSeriesPoint            `json:"bb_upper"`
	BBMiddle       []MSeriesPoint            `json:"bb_middle"`
	BBLower        []MSeriesPoint            `json:"bb_lower"`
	StochasticK    []MSeriesPoint            `json:"stoch_k"`
	StochasticD    []MSeriesPoint            `json:"stoch_d"`
	ATR            []MSeriesPoint            `json:"atr"`
	MovingAverages map[string][]MSeriesPoint `json:"moving_averages"` // "MA_10" etc.
	Support        []MSeriesPoint            `json:"support_levels"`
	Resistance     []MSeriesPoint            `json:"resistance_levels"`
}

// -----------------------------------------------------------------------------

// MSeasonBucket is the mean return (percent) for one calendar group.
type MSeasonBucket struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean_return_pct"`
}

// MRiskSummary groups the risk and return analytics for one symbol.
type MRiskSummary struct {
	MeanDailyReturn      float64         `json:"mean_daily_return"`
	AnnualizedReturn     float64         `json:"annualized_return"`
	Volatility           float64         `json:"volatility"`
	AnnualizedVolatility float64         `json:"annualized_volatility"`
	SharpeRatio          *float64        `json:"sharpe_ratio"`
	MaxDrawdown          float64         `json:"max_drawdown_pct"`
	Drawdown             []MSeriesPoint  `json:"drawdown_pct"`
	Beta                 *float64        `json:"beta"`
	ValueAtRisk          float64         `json:"value_at_risk_pct"`
	Returns              []MSeriesPoint  `json:"returns"`
	CumulativeReturns    []MSeriesPoint  `json:"cumulative_returns"`
	SeasonalityByMonth   []MSeasonBucket `json:"seasonality_by_month"`
	SeasonalityByWeekday []MSeasonBucket `json:"seasonality_by_weekday"`
}

// -----------------------------------------------------------------------------

// MSimulationSummary is the Monte Carlo output prepared for presentation.
// Individual paths are omitted from the snapshot (they are large); the
// /api/simulate endpoint returns them on demand.
type MSimulationSummary struct {
	Days              int       `json:"days"`
	Count             int       `json:"count"`
	Seed              int64     `json:"seed"`
	MeanPath          []float64 `json:"mean_path"`
	ExpectedPrice     float64   `json:"expected_price"`
	ExpectedChangePct float64   `json:"expected_change_pct"`
	TerminalPctChange []float64 `json:"terminal_pct_change"`
}

// -----------------------------------------------------------------------------

// MSnapshot is the full analysis result for one symbol.
type MSnapshot struct {
	Symbol        string              `json:"symbol"`
	GeneratedAt   int64               `json:"generated_at"`
	CurrentPrice  float64             `json:"current_price"`
	ChangePercent float64             `json:"change_pct"` // vs previous close
	Bars          []MOHLCVBar         `json:"bars"`
	Indicators    *MIndicatorSet      `json:"indicators"`
	Risk          *MRiskSummary       `json:"risk"`
	Simulation    *MSimulationSummary `json:"simulation"`
}

// -----------------------------------------------------------------------------

// MSnapshotUpdate is the WebSocket payload: the latest snapshots per symbol.
type MSnapshotUpdate struct {
	Type      string                `json:"type"` // "INITIAL" or "UPDATE"
	Snapshots map[string]*MSnapshot `json:"snapshots"`
	Timestamp int64                 `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// MSubscribeCommand is the message a WebSocket client sends to request an
// immediate state push filtered to its symbols of interest.
type MSubscribeCommand struct {
	Command string   `json:"command"` // "subscribe"
	Symbols []string `json:"symbols"`
}

// -----------------------------------------------------------------------------

// MComparisonResult is the multi-asset comparison payload.
type MComparisonResult struct {
	Symbols     []string                  `json:"symbols"`
	Correlation [][]float64               `json:"correlation"`
	Normalized  map[string][]MSeriesPoint `json:"normalized"` // % change from first observation
}
