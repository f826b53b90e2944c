package app

import (
	"context"
	"fmt"

	"github.com/transit-density/internal/config"
	"github.com/transit-density/internal/delivery/http/handler"
	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"github.com/transit-density/internal/infrastructure/octranspo"
	"github.com/transit-density/internal/repository/cache"
	"github.com/transit-density/internal/repository/csvsource"
	"github.com/transit-density/internal/repository/postgresosm"
	redisRepo "github.com/transit-density/internal/repository/redis"
	"github.com/transit-density/internal/usecase"
	"github.com/transit-density/internal/worker"
	"github.com/transit-density/internal/worker/feed"
	"github.com/transit-density/internal/worker/pipeline"
	"go.uber.org/zap"
)

// Pipeline - собранный конвейер: источники, хранилище наборов, слои и воркеры.
// Общий для cmd/api и cmd/worker.
type Pipeline struct {
	Store    *usecase.DatasetStore
	Datasets *usecase.DatasetUseCase
	Layers   *usecase.LayerUseCase
	Workers  *worker.WorkerManager
	Checks   map[string]handler.HealthCheck

	// Publishing - слои публикуются в Redis
	Publishing bool

	logger  *zap.Logger
	closers []func() error
}

// Build подключает внешние зависимости и связывает компоненты конвейера.
// При ошибке уже открытые соединения закрываются.
func Build(cfg *config.Config, logger *zap.Logger) (_ *Pipeline, err error) {
	p := &Pipeline{
		Checks: make(map[string]handler.HealthCheck),
		logger: logger,
	}
	defer func() {
		if err != nil {
			p.Close()
		}
	}()

	var publisher repository.LayerPublisher
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, redisClient.Close)
		p.Checks["redis"] = redisClient.Health

		publisher = redisRepo.NewLayerPublisher(
			cache.NewCacheRepository(redisClient),
			redisRepo.NewStreamRepository(redisClient.Client(), logger),
			cfg.Cache.LayerCacheTTL,
			logger,
		)
		p.Publishing = true
	}

	sources, err := p.sources(cfg, logger)
	if err != nil {
		return nil, err
	}

	p.Store = usecase.NewDatasetStore()
	p.Datasets = usecase.NewDatasetUseCase(
		p.Store,
		sources,
		density.LoadOptions{PopulationBounds: cfg.Datasets.PopulationBounds},
		cfg.Datasets.LoadBatchSize,
		logger,
	)

	p.Layers, err = usecase.NewLayerUseCase(p.Store, cfg.Pipeline.Settings, publisher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init layers: %w", err)
	}

	recompute := pipeline.NewRecomputeWorker(p.Layers, cfg.Pipeline.Debounce, logger)
	p.Store.OnChange(recompute.OnDatasetChange)
	p.Layers.SetTrigger(recompute.Trigger)

	p.Workers = worker.NewWorkerManager(logger)
	p.Workers.Register(recompute)

	if cfg.Feed.Enabled {
		client := octranspo.NewClient(&cfg.Feed, logger)
		p.Workers.Register(feed.NewVehiclePollWorker(client, p.Datasets, cfg.Feed.PollInterval, logger))
	}

	return p, nil
}

// sources выбирает источник каждого статического набора данных
func (p *Pipeline) sources(cfg *config.Config, logger *zap.Logger) ([]usecase.DatasetSource, error) {
	sources := []usecase.DatasetSource{
		{Category: domain.CategoryPopulation, Source: csvsource.NewSource(cfg.Datasets.PopulationCSV, logger)},
	}

	switch cfg.Datasets.POISource {
	case "postgres":
		osmDB, err := postgresosm.New(&cfg.OSMDB, logger)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, osmDB.Close)
		p.Checks["osm_db"] = osmDB.Health

		sources = append(sources, usecase.DatasetSource{
			Category: domain.CategoryEntertainment,
			Source:   postgresosm.NewPOISource(osmDB, cfg.Datasets.POIAmenities),
		})
	default:
		sources = append(sources, usecase.DatasetSource{
			Category: domain.CategoryEntertainment,
			Source:   csvsource.NewSource(cfg.Datasets.POICSV, logger),
		})
	}

	// без фида позиции транспорта - статический снимок из CSV
	if !cfg.Feed.Enabled {
		sources = append(sources, usecase.DatasetSource{
			Category: domain.CategoryVehicle,
			Source:   csvsource.NewSource(cfg.Datasets.VehicleCSV, logger),
		})
	}

	return sources, nil
}

// Run запускает воркеры и фоновую загрузку наборов данных. Не блокирует.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Workers.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}

	go func() {
		p.Datasets.LoadAll(ctx)
		p.logger.Info("Dataset loading finished")
	}()

	return nil
}

// Stop останавливает воркеры
func (p *Pipeline) Stop() error {
	if p.Workers == nil {
		return nil
	}
	return p.Workers.Stop()
}

// Close закрывает соединения в обратном порядке открытия
func (p *Pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			p.logger.Error("Failed to close connection", zap.Error(err))
		}
	}
	p.closers = nil
}
