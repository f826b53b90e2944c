package repository

import (
	"context"

	"github.com/transit-density/internal/domain"
)

// VehicleFeedRepository - живой фид позиций транспорта
type VehicleFeedRepository interface {
	// FetchVehiclePositions возвращает текущие позиции в виде записей с полями
	// "vehicle id", "latitude", "longitude"
	FetchVehiclePositions(ctx context.Context) ([]domain.Record, error)
}
