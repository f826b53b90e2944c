package repository

import (
	"context"

	"github.com/transit-density/internal/domain"
)

// RecordSource - источник сырых строк набора данных (CSV-файл, база OSM)
type RecordSource interface {
	// Load читает все записи источника
	Load(ctx context.Context) ([]domain.Record, error)

	// Name возвращает человекочитаемое имя источника для логов
	Name() string
}
