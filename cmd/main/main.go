package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-insight/src/analysis"
	"stock-insight/src/config"
	"stock-insight/src/data_source/yahoo"
	"stock-insight/src/interfaces"
	"stock-insight/src/logger"
	"stock-insight/src/metrics"
	"stock-insight/src/network"
	"stock-insight/src/scheduler"
	"stock-insight/src/server"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// Setup Components
	appMetrics := metrics.NewMetrics()

	var networkManager interfaces.INetworkManager = network.NewAsyncNetworkManager(config.MConfig, appLogger)
	var source interfaces.IDataSource = yahoo.NewYahooFinanceSource(config.MConfig, networkManager)

	analyzer := analysis.NewAnalyzer(config.MConfig, appLogger)
	srv := server.NewAPIServer(config.MConfig, appLogger, source, analyzer, appMetrics)

	refresher := scheduler.NewRefresher(config.MConfig, appLogger, source, analyzer, srv, appMetrics)

	// Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	// Initial watchlist load, then hand over to the cron schedule
	appLogger.Info("Computing initial snapshots...")
	refresher.RunNow()

	if err := refresher.Start(); err != nil {
		appLogger.Critical("Failed to start refresh scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	refresher.Stop()
}
