package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"go.uber.org/zap"
)

// DefaultLoadBatchSize - размер пачки точек при постепенной загрузке
const DefaultLoadBatchSize = 50000

// DatasetSource связывает источник записей с категорией набора данных
type DatasetSource struct {
	Category domain.Category
	Source   repository.RecordSource
}

// DatasetUseCase загружает наборы данных в буферы хранилища
type DatasetUseCase struct {
	store     *DatasetStore
	sources   []DatasetSource
	opts      density.LoadOptions
	batchSize int
	logger    *zap.Logger
}

// NewDatasetUseCase создает новый экземпляр DatasetUseCase
func NewDatasetUseCase(
	store *DatasetStore,
	sources []DatasetSource,
	opts density.LoadOptions,
	batchSize int,
	logger *zap.Logger,
) *DatasetUseCase {
	if batchSize <= 0 {
		batchSize = DefaultLoadBatchSize
	}
	return &DatasetUseCase{
		store:     store,
		sources:   sources,
		opts:      opts,
		batchSize: batchSize,
		logger:    logger,
	}
}

// LoadAll загружает все источники параллельно и ждёт завершения.
// Загрузки независимы: ошибка одной не отменяет остальные.
func (uc *DatasetUseCase) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, src := range uc.sources {
		wg.Add(1)
		go func(src DatasetSource) {
			defer wg.Done()
			_ = uc.Load(ctx, src)
		}(src)
	}
	wg.Wait()
}

// Load загружает один источник: пачками в буфер, затем помечает набор готовым.
// При ошибке буфер помечается упавшим.
func (uc *DatasetUseCase) Load(ctx context.Context, src DatasetSource) error {
	buf := uc.store.Buffer(src.Category)
	if buf == nil {
		return fmt.Errorf("unknown category %q", string(src.Category))
	}

	start := time.Now()
	uc.logger.Info("Loading dataset",
		zap.String("category", string(src.Category)),
		zap.String("source", src.Source.Name()))

	records, err := src.Source.Load(ctx)
	if err != nil {
		uc.fail(buf, src, err)
		return err
	}

	points, err := density.LoadPoints(records, src.Category, uc.opts)
	if err != nil {
		uc.fail(buf, src, err)
		return err
	}

	for i := 0; i < len(points); i += uc.batchSize {
		if err := ctx.Err(); err != nil {
			uc.fail(buf, src, err)
			return err
		}
		end := i + uc.batchSize
		if end > len(points) {
			end = len(points)
		}
		buf.Append(points[i:end])
	}

	buf.MarkReady()

	uc.logger.Info("Dataset loaded",
		zap.String("category", string(src.Category)),
		zap.String("source", src.Source.Name()),
		zap.Int("records", len(records)),
		zap.Int("points", len(points)),
		zap.Int("dropped", len(records)-len(points)),
		zap.Duration("took", time.Since(start)))

	return nil
}

func (uc *DatasetUseCase) fail(buf *PointBuffer, src DatasetSource, err error) {
	uc.logger.Error("Failed to load dataset",
		zap.String("category", string(src.Category)),
		zap.String("source", src.Source.Name()),
		zap.Error(err))
	buf.MarkFailed(err)
}

// ApplyVehiclePositions заменяет набор транспорта ответом фида с номером запроса seq.
// Возвращает false, если уже применён ответ на более поздний запрос.
func (uc *DatasetUseCase) ApplyVehiclePositions(seq uint64, records []domain.Record) (bool, error) {
	points, err := density.LoadPoints(records, domain.CategoryVehicle, uc.opts)
	if err != nil {
		return false, err
	}

	applied := uc.store.Buffer(domain.CategoryVehicle).Replace(seq, points)
	if !applied {
		uc.logger.Debug("Stale vehicle positions ignored", zap.Uint64("seq", seq))
		return false, nil
	}

	uc.logger.Debug("Vehicle positions applied",
		zap.Uint64("seq", seq),
		zap.Int("records", len(records)),
		zap.Int("points", len(points)))

	return true, nil
}

// MarkVehicleFeedFailed помечает набор транспорта упавшим, только если данных ещё не было
func (uc *DatasetUseCase) MarkVehicleFeedFailed(err error) bool {
	return uc.store.Buffer(domain.CategoryVehicle).FailIfPending(err)
}
