package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetLayerSet получает последний опубликованный набор слоёв; nil при промахе
func (r *cacheRepository) GetLayerSet(ctx context.Context) (*domain.LayerSet, error) {
	data, err := r.Get(ctx, domain.CacheKeyCurrentLayers)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var layers domain.LayerSet
	if err := json.Unmarshal(data, &layers); err != nil {
		r.logger.Error("Failed to unmarshal layers from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal layers: %w", err)
	}

	return &layers, nil
}

// SetLayerSet сохраняет набор слоёв целиком
func (r *cacheRepository) SetLayerSet(ctx context.Context, layers *domain.LayerSet, ttl time.Duration) error {
	data, err := json.Marshal(layers)
	if err != nil {
		r.logger.Error("Failed to marshal layers", zap.Error(err))
		return fmt.Errorf("marshal layers: %w", err)
	}

	return r.Set(ctx, domain.CacheKeyCurrentLayers, data, ttl)
}
