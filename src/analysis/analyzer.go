package analysis

import (
	"fmt"
	"math"
	"time"

	"stock-insight/src/compare"
	"stock-insight/src/indicators"
	"stock-insight/src/logger"
	"stock-insight/src/models"
	"stock-insight/src/montecarlo"
	"stock-insight/src/risk"
	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------
// Analyzer turns raw OHLCV bars into presentation-ready snapshots. It holds
// only configuration and a logger: every computation takes its inputs as
// parameters and returns fresh outputs, so concurrent use needs no locking.
// -----------------------------------------------------------------------------

type Analyzer struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalyzer(cfg *models.MConfig, log *logger.Logger) *Analyzer {
	return &Analyzer{Config: cfg, Logger: log}
}

// -----------------------------------------------------------------------------

// BuildSnapshot computes the full indicator, risk and simulation snapshot for
// one symbol. benchmarkBars may be nil, in which case beta is omitted.
func (a *Analyzer) BuildSnapshot(symbol string, bars, benchmarkBars []models.MOHLCVBar) (*models.MSnapshot, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars for %s", symbol)
	}

	closes, err := indicators.CloseSeries(bars)
	if err != nil {
		return nil, fmt.Errorf("invalid bar series for %s: %w", symbol, err)
	}

	snapshot := &models.MSnapshot{
		Symbol:      symbol,
		GeneratedAt: time.Now().UTC().Unix(),
		Bars:        bars,
	}

	if _, last, ok := closes.Last(); ok {
		snapshot.CurrentPrice = last
		if closes.Len() >= 2 {
			if prev, ok := closes.At(closes.Len() - 2); ok && prev != 0 {
				snapshot.ChangePercent = (last/prev - 1) * 100
			}
		}
	}

	indicatorSet, err := a.computeIndicators(bars, closes)
	if err != nil {
		return nil, fmt.Errorf("indicators for %s: %w", symbol, err)
	}
	snapshot.Indicators = indicatorSet

	riskSummary, err := a.computeRisk(closes, benchmarkBars)
	if err != nil {
		return nil, fmt.Errorf("risk analytics for %s: %w", symbol, err)
	}
	snapshot.Risk = riskSummary

	simulation, err := a.computeSimulation(closes)
	if err != nil {
		// A history too short to simulate is not fatal to the snapshot.
		a.Logger.Warning("Simulation skipped for %s: %v", symbol, err)
	} else {
		snapshot.Simulation = simulation
	}

	return snapshot, nil
}

// -----------------------------------------------------------------------------

func (a *Analyzer) computeIndicators(bars []models.MOHLCVBar, closes series.TimeSeries) (*models.MIndicatorSet, error) {
	cfg := a.Config.Analysis

	rsi, err := indicators.RSI(closes, cfg.RSIWindow)
	if err != nil {
		return nil, err
	}
	macd, err := indicators.MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	if err != nil {
		return nil, err
	}
	bollinger, err := indicators.BollingerBands(closes, cfg.BollingerWindow, cfg.BollingerK)
	if err != nil {
		return nil, err
	}
	stochastic, err := indicators.Stochastic(bars, cfg.StochasticK, cfg.StochasticD)
	if err != nil {
		return nil, err
	}
	atr, err := indicators.ATR(bars, cfg.ATRPeriod)
	if err != nil {
		return nil, err
	}
	mas, err := indicators.MovingAverages(closes, cfg.MAPeriods)
	if err != nil {
		return nil, err
	}
	support, resistance, err := indicators.SupportResistance(bars, cfg.LevelWindow)
	if err != nil {
		return nil, err
	}

	maPoints := make(map[string][]models.MSeriesPoint, len(mas))
	for _, ma := range mas {
		maPoints[fmt.Sprintf("MA_%d", ma.Period)] = toPoints(ma.Values)
	}

	return &models.MIndicatorSet{
		RSI:            toPoints(rsi),
		MACD:           toPoints(macd.Line),
		MACDSignal:     toPoints(macd.Signal),
		MACDHistogram:  toPoints(macd.Histogram),
		BBUpper:        toPoints(bollinger.Upper),
		BBMiddle:       toPoints(bollinger.Middle),
		BBLower:        toPoints(bollinger.Lower),
		StochasticK:    toPoints(stochastic.K),
		StochasticD:    toPoints(stochastic.D),
		ATR:            toPoints(atr),
		MovingAverages: maPoints,
		Support:        levelPoints(support),
		Resistance:     levelPoints(resistance),
	}, nil
}

// -----------------------------------------------------------------------------

func (a *Analyzer) computeRisk(closes series.TimeSeries, benchmarkBars []models.MOHLCVBar) (*models.MRiskSummary, error) {
	cfg := a.Config.Analysis
	returns := risk.Returns(closes)

	summary := &models.MRiskSummary{
		Returns:              toPoints(returns),
		CumulativeReturns:    toPoints(risk.CumulativeReturns(returns)),
		SeasonalityByMonth:   seasonBuckets(risk.Seasonality(returns, risk.ByMonth)),
		SeasonalityByWeekday: seasonBuckets(risk.Seasonality(returns, risk.ByWeekday)),
	}

	meanReturn := series.Mean(returns.DefinedValues())
	summary.MeanDailyReturn = meanReturn
	summary.AnnualizedReturn = meanReturn * risk.TradingDaysPerYear

	if vol, ok := risk.Volatility(returns); ok {
		summary.Volatility = vol
		summary.AnnualizedVolatility = vol * math.Sqrt(risk.TradingDaysPerYear)
	}

	if sharpe, ok := risk.SharpeRatio(returns, cfg.RiskFreeRate); ok {
		summary.SharpeRatio = &sharpe
	}

	maxDD, drawdown, ok := risk.MaxDrawdown(closes)
	if ok {
		summary.MaxDrawdown = maxDD
		summary.Drawdown = toPoints(drawdown)
	}

	if returns.DefinedCount() > 0 {
		vaR, err := risk.ValueAtRisk(returns, cfg.VaRConfidence)
		if err != nil {
			return nil, err
		}
		summary.ValueAtRisk = vaR
	}

	if len(benchmarkBars) > 0 {
		benchCloses, err := indicators.CloseSeries(benchmarkBars)
		if err != nil {
			return nil, fmt.Errorf("invalid benchmark series: %w", err)
		}
		beta, ok, err := risk.Beta(returns, risk.Returns(benchCloses))
		if err != nil {
			a.Logger.Warning("Beta unavailable: %v", err)
		} else if ok {
			summary.Beta = &beta
		}
	}

	return summary, nil
}

// -----------------------------------------------------------------------------

func (a *Analyzer) computeSimulation(closes series.TimeSeries) (*models.MSimulationSummary, error) {
	cfg := a.Config.Analysis

	_, last, ok := closes.Last()
	if !ok {
		return nil, fmt.Errorf("no defined closing price")
	}

	seed := cfg.SimulationSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	batch, err := montecarlo.Simulate(last, risk.Returns(closes), cfg.SimulationDays, cfg.SimulationCount, seed)
	if err != nil {
		return nil, err
	}

	return &models.MSimulationSummary{
		Days:              batch.Days,
		Count:             len(batch.Paths),
		Seed:              seed,
		MeanPath:          batch.MeanPath,
		ExpectedPrice:     batch.ExpectedPrice(),
		ExpectedChangePct: batch.ExpectedChangePercent(),
		TerminalPctChange: batch.TerminalPctChange,
	}, nil
}

// -----------------------------------------------------------------------------

// Compare aligns several assets and produces the correlation matrix plus the
// rebased comparison series.
func (a *Analyzer) Compare(symbols []string, barsBySymbol map[string][]models.MOHLCVBar) (*models.MComparisonResult, error) {
	priceSeries := make([]series.TimeSeries, 0, len(symbols))
	normalized := make(map[string][]models.MSeriesPoint, len(symbols))

	for _, sym := range symbols {
		bars, okBars := barsBySymbol[sym]
		if !okBars || len(bars) == 0 {
			return nil, fmt.Errorf("no bars for %s", sym)
		}
		closes, err := indicators.CloseSeries(bars)
		if err != nil {
			return nil, fmt.Errorf("invalid bar series for %s: %w", sym, err)
		}
		priceSeries = append(priceSeries, closes)
		normalized[sym] = toPoints(compare.NormalizeToFirst(closes))
	}

	matrix, err := compare.CorrelationMatrix(symbols, priceSeries)
	if err != nil {
		return nil, err
	}

	return &models.MComparisonResult{
		Symbols:     matrix.Symbols,
		Correlation: matrix.Values,
		Normalized:  normalized,
	}, nil
}

// -----------------------------------------------------------------------------
// DTO helpers. Undefined positions are dropped here: the wire format carries
// only observed points, and alignment survives through the timestamps.
// -----------------------------------------------------------------------------

func toPoints(s series.TimeSeries) []models.MSeriesPoint {
	ts, vs := s.Defined()
	points := make([]models.MSeriesPoint, len(ts))
	for i := range ts {
		points[i] = models.MSeriesPoint{Timestamp: ts[i], Value: vs[i]}
	}
	return points
}

func levelPoints(levels []indicators.Level) []models.MSeriesPoint {
	points := make([]models.MSeriesPoint, len(levels))
	for i, l := range levels {
		points[i] = models.MSeriesPoint{Timestamp: l.Timestamp, Value: l.Price}
	}
	return points
}

func seasonBuckets(buckets []risk.Bucket) []models.MSeasonBucket {
	out := make([]models.MSeasonBucket, len(buckets))
	for i, b := range buckets {
		out[i] = models.MSeasonBucket{Label: b.Label, Mean: b.Mean}
	}
	return out
}
