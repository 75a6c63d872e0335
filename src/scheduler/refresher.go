package scheduler

import (
	"fmt"
	"time"

	"stock-insight/src/analysis"
	"stock-insight/src/interfaces"
	"stock-insight/src/logger"
	"stock-insight/src/metrics"
	"stock-insight/src/models"
	"stock-insight/src/utils"

	"github.com/robfig/cron/v3"
)

// -----------------------------------------------------------------------------
// Refresher recomputes the watchlist snapshots on a cron schedule and pushes
// the result to the publisher. Runs are skipped while every tracked exchange
// is closed: the data cannot have changed.
// -----------------------------------------------------------------------------

type Refresher struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Source    interfaces.IDataSource
	Analyzer  *analysis.Analyzer
	Publisher interfaces.ISnapshotPublisher
	Scheduler *utils.MarketScheduler
	Metrics   *metrics.Metrics
	cron      *cron.Cron
}

// -----------------------------------------------------------------------------

func NewRefresher(cfg *models.MConfig, log *logger.Logger, source interfaces.IDataSource,
	analyzer *analysis.Analyzer, publisher interfaces.ISnapshotPublisher, m *metrics.Metrics) *Refresher {

	tracked := append([]string{}, cfg.DataSource.Symbols...)
	if cfg.DataSource.Benchmark != "" {
		tracked = append(tracked, cfg.DataSource.Benchmark)
	}

	return &Refresher{
		Config:    cfg,
		Logger:    log,
		Source:    source,
		Analyzer:  analyzer,
		Publisher: publisher,
		Scheduler: utils.NewMarketScheduler(tracked, logger.NewLogger(cfg.LogLevel, "MarketScheduler")),
		Metrics:   m,
		cron:      cron.New(),
	}
}

// -----------------------------------------------------------------------------

// Start registers the refresh task and starts the cron scheduler.
func (r *Refresher) Start() error {
	if !r.Config.Refresh.Enabled {
		r.Logger.Info("Scheduled refresh disabled")
		return nil
	}

	if _, err := r.cron.AddFunc(r.Config.Refresh.CronSpec, r.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}

	r.cron.Start()
	r.Logger.Info("Refresh scheduler started (%s)", r.Config.Refresh.CronSpec)
	return nil
}

// -----------------------------------------------------------------------------

// Stop stops the cron scheduler gracefully.
func (r *Refresher) Stop() {
	r.cron.Stop()
	r.Logger.Info("Refresh scheduler stopped")
}

// -----------------------------------------------------------------------------

// RunNow executes a refresh immediately, regardless of market hours. Used for
// the initial load at startup.
func (r *Refresher) RunNow() {
	r.refresh()
}

// -----------------------------------------------------------------------------

func (r *Refresher) refreshTask() {
	if !r.Scheduler.AnyMarketOpen() {
		r.Logger.Info("All markets closed, skipping refresh")
		return
	}
	r.refresh()
}

// -----------------------------------------------------------------------------

func (r *Refresher) refresh() {
	symbols := r.Config.DataSource.Symbols
	if len(symbols) == 0 {
		return
	}

	start := time.Now()
	r.Metrics.RefreshRuns.Inc()

	fetchList := append([]string{}, symbols...)
	benchmark := r.Config.DataSource.Benchmark
	if benchmark != "" && !containsSymbol(fetchList, benchmark) {
		fetchList = append(fetchList, benchmark)
	}

	history, err := r.Source.FetchHistory(fetchList)
	if err != nil {
		r.Metrics.FetchErrors.Inc()
		r.Logger.Error("Refresh fetch failed: %v", err)
		return
	}

	benchmarkBars := history[benchmark]

	snapshots := make(map[string]*models.MSnapshot, len(symbols))
	for _, symbol := range symbols {
		bars, ok := history[symbol]
		if !ok {
			r.Logger.Warning("No data for %s, keeping previous snapshot", symbol)
			continue
		}

		buildStart := time.Now()
		snapshot, err := r.Analyzer.BuildSnapshot(symbol, bars, benchmarkBars)
		if err != nil {
			r.Logger.Error("Snapshot failed for %s: %v", symbol, err)
			continue
		}
		r.Metrics.SnapshotBuilds.Inc()
		r.Metrics.SnapshotBuildDur.Observe(time.Since(buildStart).Seconds())

		snapshots[symbol] = snapshot
	}

	if len(snapshots) == 0 {
		r.Logger.Warning("Refresh produced no snapshots")
		return
	}

	r.Publisher.Publish(&models.MSnapshotUpdate{
		Type:      "UPDATE",
		Snapshots: snapshots,
		Timestamp: time.Now().UTC().Unix(),
	})

	r.Metrics.RefreshDur.Observe(time.Since(start).Seconds())
	r.Logger.Info("Refreshed %d/%d symbols in %.1fs",
		len(snapshots), len(symbols), time.Since(start).Seconds())
}

// -----------------------------------------------------------------------------

func containsSymbol(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
