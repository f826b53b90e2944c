package domain

import "time"

// DatasetState - состояние загрузки набора данных
type DatasetState string

const (
	DatasetPending DatasetState = "pending"
	DatasetReady   DatasetState = "ready"
	DatasetFailed  DatasetState = "failed"
)

// DatasetStatus - состояние набора данных для /status и логов
type DatasetStatus struct {
	Category  Category     `json:"category"`
	State     DatasetState `json:"state"`
	Points    int          `json:"points"`
	Version   uint64       `json:"version"`
	Error     string       `json:"error,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Snapshot - согласованный срез точек набора данных.
// Points разделяет память с буфером, поэтому изменять его нельзя.
type Snapshot struct {
	Category Category
	Version  uint64
	Points   []GeoPoint
}
