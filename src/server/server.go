package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"stock-insight/src/analysis"
	"stock-insight/src/indicators"
	"stock-insight/src/interfaces"
	"stock-insight/src/logger"
	"stock-insight/src/metrics"
	"stock-insight/src/models"
	"stock-insight/src/montecarlo"
	"stock-insight/src/risk"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

const maxSimulationCount = 10000

type APIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Source   interfaces.IDataSource
	Analyzer *analysis.Analyzer
	Metrics  *metrics.Metrics
	engine   *gin.Engine

	// WebSocket clients. The map belongs to the hub goroutine; connections
	// mirrors its size for handlers running outside that goroutine.
	clients     map[*Client]struct{}
	connections atomic.Int64
	broadcast   chan *models.MSnapshotUpdate
	register    chan *Client
	unregister  chan *Client

	// Local cache of the latest snapshots per symbol
	latestState *models.MSnapshotUpdate
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, log *logger.Logger, source interfaces.IDataSource, analyzer *analysis.Analyzer, m *metrics.Metrics) *APIServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		Source:   source,
		Analyzer: analyzer,
		Metrics:  m,
		engine:   gin.Default(),
		clients:  make(map[*Client]struct{}),
		// Buffered queue so publishers never block on slow clients
		broadcast:  make(chan *models.MSnapshotUpdate, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestState: &models.MSnapshotUpdate{
			Type:      "INITIAL",
			Snapshots: make(map[string]*models.MSnapshot),
			Timestamp: 0,
		},
	}

	// CORS for local dashboards
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.engine.Use(s.countRequests)

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------

func (s *APIServer) countRequests(c *gin.Context) {
	c.Next()

	endpoint := c.FullPath()
	if endpoint == "" {
		return
	}
	s.Metrics.RequestsTotal.WithLabelValues(endpoint).Inc()
	if c.Writer.Status() >= 400 {
		s.Metrics.RequestErrors.WithLabelValues(endpoint).Inc()
	}
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/analysis/:symbol", s.getAnalysis)
	s.engine.GET("/api/simulate/:symbol", s.getSimulate)
	s.engine.GET("/api/compare", s.getCompare)
	s.engine.GET("/api/company/:symbol", s.getCompany)
	s.engine.GET("/api/news/:symbol", s.getNews)
	s.engine.GET("/api/indices", s.getIndices)

	// Prometheus endpoint
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	connections := s.connections.Load()

	s.stateMutex.RLock()
	timestamp := s.latestState.Timestamp
	symbols := len(s.latestState.Snapshots)
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   connections,
		"symbols":       symbols,
		"latest_update": timestamp,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"symbols":          s.Config.DataSource.Symbols,
		"benchmark":        s.Config.DataSource.Benchmark,
		"history_days":     s.Config.DataSource.HistoryDays,
		"interval":         s.Config.DataSource.Interval,
		"rsi_window":       s.Config.Analysis.RSIWindow,
		"ma_periods":       s.Config.Analysis.MAPeriods,
		"risk_free_rate":   s.Config.Analysis.RiskFreeRate,
		"var_confidence":   s.Config.Analysis.VaRConfidence,
		"simulation_days":  s.Config.Analysis.SimulationDays,
		"simulation_count": s.Config.Analysis.SimulationCount,
	})
}

// -----------------------------------------------------------------------------

// getAnalysis serves the full snapshot for one symbol. Watchlist symbols are
// served from the refreshed cache; anything else is computed on demand and
// cached for the next request.
func (s *APIServer) getAnalysis(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	s.stateMutex.RLock()
	cached := s.latestState.Snapshots[symbol]
	s.stateMutex.RUnlock()

	if cached != nil && c.Query("refresh") != "true" {
		c.JSON(200, cached)
		return
	}

	snapshot, err := s.buildSnapshot(symbol)
	if err != nil {
		s.Logger.Error("Analysis failed for %s: %v", symbol, err)
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	s.stateMutex.Lock()
	s.latestState.Snapshots[symbol] = snapshot
	s.stateMutex.Unlock()

	c.JSON(200, snapshot)
}

// -----------------------------------------------------------------------------

func (s *APIServer) buildSnapshot(symbol string) (*models.MSnapshot, error) {
	symbols := []string{symbol}
	benchmark := s.Config.DataSource.Benchmark
	if benchmark != "" && benchmark != symbol {
		symbols = append(symbols, benchmark)
	}

	history, err := s.Source.FetchHistory(symbols)
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		return nil, err
	}

	bars, ok := history[symbol]
	if !ok {
		return nil, fmt.Errorf("no data returned for %s", symbol)
	}

	start := time.Now()
	snapshot, err := s.Analyzer.BuildSnapshot(symbol, bars, history[benchmark])
	if err != nil {
		return nil, err
	}
	s.Metrics.SnapshotBuilds.Inc()
	s.Metrics.SnapshotBuildDur.Observe(time.Since(start).Seconds())

	return snapshot, nil
}

// -----------------------------------------------------------------------------

// getSimulate runs a Monte Carlo projection on demand and returns the full
// path set, which is too large to carry inside the regular snapshot.
func (s *APIServer) getSimulate(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	days := queryInt(c, "days", s.Config.Analysis.SimulationDays)
	count := queryInt(c, "count", s.Config.Analysis.SimulationCount)
	seed := queryInt64(c, "seed", s.Config.Analysis.SimulationSeed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if count > maxSimulationCount {
		c.JSON(400, gin.H{"error": fmt.Sprintf("count must be at most %d", maxSimulationCount)})
		return
	}

	history, err := s.Source.FetchHistory([]string{symbol})
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	closes, err := indicators.CloseSeries(history[symbol])
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	_, startPrice, ok := closes.Last()
	if !ok {
		c.JSON(502, gin.H{"error": fmt.Sprintf("no usable closing price for %s", symbol)})
		return
	}

	batch, err := montecarlo.Simulate(startPrice, risk.Returns(closes), days, count, seed)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"symbol":              symbol,
		"start_price":         batch.StartPrice,
		"days":                batch.Days,
		"count":               count,
		"seed":                seed,
		"mu":                  batch.Mu,
		"sigma":               batch.Sigma,
		"paths":               batch.Paths,
		"mean_path":           batch.MeanPath,
		"terminal_values":     batch.TerminalValues,
		"terminal_pct_change": batch.TerminalPctChange,
		"expected_price":      batch.ExpectedPrice(),
		"expected_change_pct": batch.ExpectedChangePercent(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getCompare(c *gin.Context) {
	raw := c.Query("symbols")
	var symbols []string
	for _, sym := range strings.Split(raw, ",") {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}

	if len(symbols) < 2 {
		c.JSON(400, gin.H{"error": "need at least two symbols, e.g. ?symbols=AAPL,MSFT"})
		return
	}

	history, err := s.Source.FetchHistory(symbols)
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Analyzer.Compare(symbols, history)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, result)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getCompany(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	info, err := s.Source.FetchCompanyInfo(symbol)
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, info)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getNews(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	news, err := s.Source.FetchNews(symbol)
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"symbol": symbol, "news": news})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getIndices(c *gin.Context) {
	indices, err := s.Source.FetchIndices()
	if err != nil {
		s.Metrics.FetchErrors.Inc()
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"indices": indices})
}

// -----------------------------------------------------------------------------
// Query helpers
// -----------------------------------------------------------------------------

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}
