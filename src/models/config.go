package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	Network    MNetworkConfig    `yaml:"network"`
	DataSource MDataSourceConfig `yaml:"data_source"`
	Analysis   MAnalysisConfig   `yaml:"analysis"`
	Refresh    MRefreshConfig    `yaml:"refresh"`
}

type MNetworkConfig struct {
	RequestTimeout     int    `yaml:"timeout"`
	MaxRetries         int    `yaml:"retries"`
	ConcurrentRequests int    `yaml:"concurrent_requests"`
	UserAgent          string `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	Name        string   `yaml:"name"`
	Symbols     []string `yaml:"symbols"`
	Benchmark   string   `yaml:"benchmark"` // market index for beta, e.g. "^GSPC"
	HistoryDays int      `yaml:"history_days"`
	Interval    string   `yaml:"interval"` // bar interval, e.g. "1d"
	NewsLimit   int      `yaml:"news_limit"`
}

// MAnalysisConfig carries the indicator and risk parameters. Zero values are
// replaced by the conventional defaults at load time (see config.Validate).
type MAnalysisConfig struct {
	RSIWindow       int     `yaml:"rsi_window"`       // 14
	MACDFast        int     `yaml:"macd_fast"`        // 12
	MACDSlow        int     `yaml:"macd_slow"`        // 26
	MACDSignal      int     `yaml:"macd_signal"`      // 9
	BollingerWindow int     `yaml:"bollinger_window"` // 20
	BollingerK      float64 `yaml:"bollinger_k"`      // 2
	StochasticK     int     `yaml:"stochastic_k"`     // 14
	StochasticD     int     `yaml:"stochastic_d"`     // 3
	ATRPeriod       int     `yaml:"atr_period"`       // 14
	MAPeriods       []int   `yaml:"ma_periods"`       // 10, 20, 50, 200
	LevelWindow     int     `yaml:"level_window"`     // 10
	RiskFreeRate    float64 `yaml:"risk_free_rate"`   // 0.02 annual
	VaRConfidence   float64 `yaml:"var_confidence"`   // 0.95
	SimulationDays  int     `yaml:"simulation_days"`  // 30
	SimulationCount int     `yaml:"simulation_count"` // 1000
	SimulationSeed  int64   `yaml:"simulation_seed"`  // 0 = time-based
}

type MRefreshConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CronSpec string `yaml:"cron_spec"` // e.g. "*/5 * * * *"
}
