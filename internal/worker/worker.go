package worker

import (
	"context"
)

// Worker - фоновый цикл (опрос фида, пересчёт слоёв)
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
