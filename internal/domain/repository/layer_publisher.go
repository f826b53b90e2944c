package repository

import (
	"context"

	"github.com/transit-density/internal/domain"
)

// LayerPublisher раздаёт новое поколение слоёв внешним потребителям
type LayerPublisher interface {
	PublishLayers(ctx context.Context, layers *domain.LayerSet) error
}
