package repository

import (
	"context"
	"time"

	"github.com/transit-density/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetLayerSet получает последний опубликованный набор слоёв
	GetLayerSet(ctx context.Context) (*domain.LayerSet, error)

	// SetLayerSet сохраняет набор слоёв
	SetLayerSet(ctx context.Context, layers *domain.LayerSet, ttl time.Duration) error
}
