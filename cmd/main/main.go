package main

import (
	"flag"
	"fmt"
	"os"

	"stock-dashboard/src/analysis"
	"stock-dashboard/src/config"
	"stock-dashboard/src/data_source/yahoo"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/network"
	"stock-dashboard/src/server"
	"stock-dashboard/src/service"
	"stock-dashboard/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(conf.LogLevel, conf.Name)

	// Setup candle cache
	var cache interfaces.IDatabase

	switch conf.Storage.DBType {
	case "postgres":
		cache, err = storage.NewPostgresCache(conf.MConfig, appLogger)
	default:
		// Default to SQLite
		cache, err = storage.NewSQLiteCache(conf.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init cache: %v", err)
	}
	if err := cache.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate cache: %v", err)
	}
	defer cache.Close()

	// Setup pipeline components
	var networkManager interfaces.INetworkManager = network.NewNetworkManager(conf.MConfig, appLogger)
	var source interfaces.IDataSource = yahoo.NewYahooFinanceSource(conf.MConfig, networkManager)
	analyzer := analysis.NewAnalysisFacade(conf.MConfig, appLogger)

	var svc interfaces.IDashboardService = service.NewMarketService(conf.MConfig, source, cache, analyzer, appLogger)

	// Start server
	srv := server.NewDashboardServer(conf.MConfig, svc, appLogger)

	appLogger.Info("Dashboard ready: http://%s:%d/", conf.Host, conf.Port)
	if err := srv.Start(); err != nil {
		appLogger.Critical("Server failed: %v", err)
	}
}
