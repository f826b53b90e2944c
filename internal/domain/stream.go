package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamLayersUpdated = "stream:layers:updated"
)

// Cache keys
const (
	CacheKeyCurrentLayers = "layers:current"
)

// LayerUpdatedEvent - событие о новом поколении слоёв
type LayerUpdatedEvent struct {
	LayerSetID      uuid.UUID           `json:"layer_set_id"`
	Generation      uint64              `json:"generation"`
	ComputedAt      time.Time           `json:"computed_at"`
	Resolution      int                 `json:"resolution"`
	DatasetVersions map[Category]uint64 `json:"dataset_versions"`
}

// NewLayerUpdatedEvent собирает событие из набора слоёв
func NewLayerUpdatedEvent(l *LayerSet) LayerUpdatedEvent {
	return LayerUpdatedEvent{
		LayerSetID:      l.ID,
		Generation:      l.Generation,
		ComputedAt:      l.ComputedAt,
		Resolution:      l.Settings.Resolution,
		DatasetVersions: l.DatasetVersions,
	}
}
