package feed

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"github.com/transit-density/internal/worker"
	"go.uber.org/zap"
)

// VehiclePositionsSink принимает ответы фида
type VehiclePositionsSink interface {
	ApplyVehiclePositions(seq uint64, records []domain.Record) (bool, error)
	MarkVehicleFeedFailed(err error) bool
}

// VehiclePollWorker периодически опрашивает фид позиций транспорта
type VehiclePollWorker struct {
	*worker.BaseWorker
	feed     repository.VehicleFeedRepository
	sink     VehiclePositionsSink
	interval time.Duration
	seq      atomic.Uint64
}

// NewVehiclePollWorker создает новый VehiclePollWorker
func NewVehiclePollWorker(
	feed repository.VehicleFeedRepository,
	sink VehiclePositionsSink,
	interval time.Duration,
	logger *zap.Logger,
) *VehiclePollWorker {
	return &VehiclePollWorker{
		BaseWorker: worker.NewBaseWorker("vehicle-feed", logger),
		feed:       feed,
		sink:       sink,
		interval:   interval,
	}
}

// Start опрашивает фид сразу и затем с интервалом
func (w *VehiclePollWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting VehiclePollWorker", zap.Duration("interval", w.interval))

	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll выполняет один запрос. Номер выдаётся до запроса, поэтому
// опоздавший ответ на более ранний запрос не перезапишет свежие данные.
func (w *VehiclePollWorker) poll(ctx context.Context) {
	logger := w.Logger()
	seq := w.seq.Add(1)

	records, err := w.feed.FetchVehiclePositions(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("Vehicle feed poll failed", zap.Uint64("seq", seq), zap.Error(err))
		if w.sink.MarkVehicleFeedFailed(err) {
			logger.Error("Vehicle dataset marked failed: no positions received yet", zap.Error(err))
		}
		return
	}

	applied, err := w.sink.ApplyVehiclePositions(seq, records)
	if err != nil {
		logger.Error("Failed to apply vehicle positions", zap.Uint64("seq", seq), zap.Error(err))
		return
	}

	logger.Debug("Vehicle feed polled",
		zap.Uint64("seq", seq),
		zap.Int("records", len(records)),
		zap.Bool("applied", applied))
}
