package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/transit-density/internal/app"
	"github.com/transit-density/internal/config"
	"github.com/transit-density/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	// без HTTP слои доступны подписчикам только через Redis
	if !cfg.Redis.Enabled {
		log.Fatal("Headless worker requires Redis, set REDIS_ENABLED=true")
	}

	log.Info("Starting Transit Density Worker")
	log.Info("Configuration loaded",
		zap.String("redis_addr", cfg.GetRedisAddr()),
		zap.Bool("feed_enabled", cfg.Feed.Enabled),
		zap.Duration("feed_poll_interval", cfg.Feed.PollInterval),
		zap.Duration("debounce", cfg.Pipeline.Debounce))

	// 3. Connect dependencies and build the pipeline
	pipeline, err := app.Build(cfg, log)
	if err != nil {
		log.Fatal("Failed to build pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	// 4. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := pipeline.Run(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := pipeline.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
