package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"go.uber.org/zap"
)

type layerPublisher struct {
	cache  repository.CacheRepository
	stream repository.StreamRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewLayerPublisher сохраняет набор слоёв в кеш и анонсирует его в stream:layers:updated
func NewLayerPublisher(
	cache repository.CacheRepository,
	stream repository.StreamRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.LayerPublisher {
	return &layerPublisher{
		cache:  cache,
		stream: stream,
		ttl:    ttl,
		logger: logger,
	}
}

func (p *layerPublisher) PublishLayers(ctx context.Context, layers *domain.LayerSet) error {
	if layers == nil {
		return fmt.Errorf("layers cannot be nil")
	}

	// событие без закешированного набора бесполезно подписчикам
	if err := p.cache.SetLayerSet(ctx, layers, p.ttl); err != nil {
		return fmt.Errorf("cache layers: %w", err)
	}

	if err := p.stream.PublishToStream(ctx, domain.StreamLayersUpdated, domain.NewLayerUpdatedEvent(layers)); err != nil {
		return fmt.Errorf("announce layers: %w", err)
	}

	p.logger.Info("Layers published",
		zap.String("layer_set_id", layers.ID.String()),
		zap.Uint64("generation", layers.Generation))

	return nil
}
