package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"banquetprep/internal/api"
	"banquetprep/internal/config"
	"banquetprep/internal/database"
	"banquetprep/internal/live"
	"banquetprep/internal/logging"
	"banquetprep/internal/monitoring"
	"banquetprep/internal/prep"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	log := logging.Setup(cfg.Log.Level)
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, closeCatalog, err := openCatalog(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to initialize catalog", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeCatalog()

	metrics := monitoring.NewCollector()
	planner := prep.NewPlanner(catalog, prep.Options{
		DefaultBuffer: cfg.Planning.DefaultBuffer,
		StepMinutes:   cfg.Planning.StepMinutes,
	}, metrics, monitoring.NewMonitor(), log)

	router := api.NewPlannerAPI(planner, live.NewFeed(planner, log), metrics, log)

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics, metrics, log)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("API server shutdown error", "error", err)
		}
		cancel()
	}()

	log.Info("Starting API server", "port", cfg.Server.Port, "driver", cfg.Database.Driver)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("API server error", "error", err)
		os.Exit(1)
	}
}

func openCatalog(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (prep.Catalog, func(), error) {
	today := time.Now()
	if cfg.Driver == "memory" {
		var sample database.Sample
		if cfg.Seed {
			sample = database.SampleData(today)
		}
		return database.NewMemoryStore(sample), func() {}, nil
	}

	store, err := database.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close database", "error", err)
		}
	}
	if err := store.Migrate(); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.Seed {
		if err := store.Seed(ctx, database.SampleData(today)); err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}
	return store, closeStore, nil
}

func startMetricsServer(cfg config.MetricsConfig, metrics *monitoring.Collector, log *slog.Logger) {
	metricsRouter := gin.New()
	metricsRouter.GET(cfg.Path, gin.WrapH(metrics.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: metricsRouter,
	}

	log.Info("Starting metrics server", "port", cfg.Port, "path", cfg.Path)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("Metrics server error", "error", err)
	}
}
