package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/transit-density/internal/domain"
	apperrors "github.com/transit-density/internal/pkg/errors"
	"github.com/transit-density/internal/worker"
	"go.uber.org/zap"
)

// Recomputer строит новое поколение слоёв
type Recomputer interface {
	Recompute(ctx context.Context) (*domain.LayerSet, error)
}

// RecomputeWorker запускает пересчёт после паузы в потоке изменений (debounce).
// Серия триггеров в пределах окна даёт один пересчёт.
type RecomputeWorker struct {
	*worker.BaseWorker
	recomputer Recomputer
	debounce   time.Duration
	triggers   chan struct{}
}

// NewRecomputeWorker создает новый RecomputeWorker
func NewRecomputeWorker(recomputer Recomputer, debounce time.Duration, logger *zap.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		BaseWorker: worker.NewBaseWorker("layer-recompute", logger),
		recomputer: recomputer,
		debounce:   debounce,
		triggers:   make(chan struct{}, 1),
	}
}

// Trigger запрашивает пересчёт; не блокирует
func (w *RecomputeWorker) Trigger() {
	select {
	case w.triggers <- struct{}{}:
	default:
	}
}

// OnDatasetChange - обработчик изменений хранилища наборов данных
func (w *RecomputeWorker) OnDatasetChange(domain.Category) {
	w.Trigger()
}

// Start обрабатывает триггеры до остановки
func (w *RecomputeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RecomputeWorker", zap.Duration("debounce", w.debounce))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-w.triggers:
			if pending {
				stopTimer(timer)
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.run(ctx)
		}
	}
}

func (w *RecomputeWorker) run(ctx context.Context) {
	layers, err := w.recomputer.Recompute(ctx)
	if err != nil {
		// пока наборы не готовы, триггер отбрасывается: следующий придёт с изменением данных
		if errors.Is(err, apperrors.ErrDatasetsNotReady) || errors.Is(err, apperrors.ErrDatasetLoadFailed) {
			w.Logger().Debug("Recompute skipped: datasets not ready", zap.Error(err))
			return
		}
		if ctx.Err() != nil {
			return
		}
		w.Logger().Error("Recompute failed", zap.Error(err))
		return
	}

	w.Logger().Debug("Recompute finished", zap.Uint64("generation", layers.Generation))
}

// stopTimer останавливает таймер и вычищает канал, чтобы Reset не сработал дважды
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
