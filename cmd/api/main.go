package main

// @title Transit Density API
// @version 1.0.0
// @description Сервис плотности транспорта. Агрегирует население, точки развлечений и позиции транспорта OC Transpo по гексагонам H3, считает разности пар наборов данных и Top-K ячеек для отрисовки на карте.
// @description
// @description Основные возможности:
// @description - Тепловые карты наборов данных по гексагонам
// @description - Слои разностей пар с Top-K маркерами
// @description - Живые позиции транспорта из GTFS-RT фида
// @description - Изменение разрешения и множителей в рантайме

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/transit-density/docs/swagger"
	"github.com/transit-density/internal/app"
	"github.com/transit-density/internal/config"
	httpDelivery "github.com/transit-density/internal/delivery/http"
	"github.com/transit-density/internal/delivery/http/handler"
	"github.com/transit-density/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Transit Density API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Int("resolution", cfg.Pipeline.Settings.Resolution),
		zap.Bool("feed_enabled", cfg.Feed.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("poi_source", cfg.Datasets.POISource),
	)

	// 3. Connect dependencies and build the pipeline
	pipeline, err := app.Build(cfg, log)
	if err != nil {
		log.Fatal("Failed to build pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	// 4. Start workers and background dataset loading
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pipeline.Run(ctx); err != nil {
		log.Fatal("Failed to start pipeline", zap.Error(err))
	}

	// 5. Initialize HTTP Handlers
	layerHandler := handler.NewLayerHandler(pipeline.Layers, log)
	settingsHandler := handler.NewSettingsHandler(pipeline.Layers, log)
	statusHandler := handler.NewStatusHandler(pipeline.Layers, pipeline.Checks, log)

	// 6. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		layerHandler,
		settingsHandler,
		statusHandler,
	)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if err := pipeline.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
