package config

import (
	"fmt"
	"os"

	"stock-insight/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills the conventional analysis parameters for fields left at
// their zero value.
func (c *Config) applyDefaults() {
	a := &c.Analysis
	if a.RSIWindow == 0 {
		a.RSIWindow = 14
	}
	if a.MACDFast == 0 {
		a.MACDFast = 12
	}
	if a.MACDSlow == 0 {
		a.MACDSlow = 26
	}
	if a.MACDSignal == 0 {
		a.MACDSignal = 9
	}
	if a.BollingerWindow == 0 {
		a.BollingerWindow = 20
	}
	if a.BollingerK == 0 {
		a.BollingerK = 2
	}
	if a.StochasticK == 0 {
		a.StochasticK = 14
	}
	if a.StochasticD == 0 {
		a.StochasticD = 3
	}
	if a.ATRPeriod == 0 {
		a.ATRPeriod = 14
	}
	if len(a.MAPeriods) == 0 {
		a.MAPeriods = []int{10, 20, 50, 200}
	}
	if a.LevelWindow == 0 {
		a.LevelWindow = 10
	}
	if a.RiskFreeRate == 0 {
		a.RiskFreeRate = 0.02
	}
	if a.VaRConfidence == 0 {
		a.VaRConfidence = 0.95
	}
	if a.SimulationDays == 0 {
		a.SimulationDays = 30
	}
	if a.SimulationCount == 0 {
		a.SimulationCount = 1000
	}

	ds := &c.DataSource
	if ds.HistoryDays == 0 {
		ds.HistoryDays = 365
	}
	if ds.Interval == "" {
		ds.Interval = "1d"
	}
	if ds.NewsLimit == 0 {
		ds.NewsLimit = 10
	}
	if ds.Benchmark == "" {
		ds.Benchmark = "^GSPC"
	}

	if c.Refresh.CronSpec == "" {
		c.Refresh.CronSpec = "*/15 * * * *"
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Network.ConcurrentRequests <= 0 {
		return fmt.Errorf("concurrent requests must be greater than 0")
	}

	// Validate DataSource configuration
	if c.DataSource.Name == "" {
		return fmt.Errorf("data source must have a name")
	}
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data source must have at least one symbol")
	}
	if c.DataSource.HistoryDays <= 0 {
		return fmt.Errorf("history days must be greater than 0")
	}

	// Validate Analysis configuration
	a := c.Analysis
	if a.RSIWindow < 1 || a.BollingerWindow < 1 || a.StochasticK < 1 ||
		a.StochasticD < 1 || a.ATRPeriod < 1 || a.LevelWindow < 1 {
		return fmt.Errorf("indicator windows must be greater than 0")
	}
	if a.MACDFast < 1 || a.MACDSlow < 1 || a.MACDSignal < 1 {
		return fmt.Errorf("MACD periods must be greater than 0")
	}
	if a.MACDFast >= a.MACDSlow {
		return fmt.Errorf("MACD fast period (%d) must be smaller than slow period (%d)", a.MACDFast, a.MACDSlow)
	}
	for _, p := range a.MAPeriods {
		if p < 1 {
			return fmt.Errorf("moving average period must be greater than 0, got %d", p)
		}
	}
	if a.BollingerK < 0 {
		return fmt.Errorf("bollinger band width cannot be negative")
	}
	if a.VaRConfidence <= 0 || a.VaRConfidence >= 1 {
		return fmt.Errorf("VaR confidence must be in (0, 1), got %f", a.VaRConfidence)
	}
	if a.SimulationDays < 1 || a.SimulationCount < 1 {
		return fmt.Errorf("simulation horizon and count must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
