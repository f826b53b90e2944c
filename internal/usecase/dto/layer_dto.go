package dto

import (
	"time"

	"github.com/transit-density/internal/domain"
)

// HeatPoint - точка тепловой карты (центр ячейки и её значение)
type HeatPoint struct {
	Position [2]float64 `json:"position"` // [lon, lat]
	Weight   float64    `json:"weight"`
}

// DiffPoint - точка слоя разности; elevation = |weight| для 3D-столбиков
type DiffPoint struct {
	CellID    string     `json:"cell_id"`
	Position  [2]float64 `json:"position"`
	Weight    float64    `json:"weight"`
	Elevation float64    `json:"elevation"`
}

// LayerResponse - слой, готовый к отрисовке
type LayerResponse struct {
	Layer      domain.LayerDescriptor `json:"layer"`
	Generation uint64                 `json:"generation"`
	Resolution int                    `json:"resolution"`
	HeatPoints []HeatPoint            `json:"heat_points,omitempty"`
	DiffPoints []DiffPoint            `json:"diff_points,omitempty"`
	Top        []domain.RankedCell    `json:"top,omitempty"`
}

// ScatterPoint - исходная точка набора данных
type ScatterPoint struct {
	Position [2]float64 `json:"position"`
	Weight   float64    `json:"weight"`
}

// PointsResponse - снимок точек набора данных
type PointsResponse struct {
	Dataset domain.Category `json:"dataset"`
	Version uint64          `json:"version"`
	Points  []ScatterPoint  `json:"points"`
}

// CellResponse - геометрия ячейки и её значения в текущем поколении слоёв
type CellResponse struct {
	CellID     string              `json:"cell_id"`
	Resolution int                 `json:"resolution"`
	Center     domain.Coordinate   `json:"center"`
	Boundary   []domain.Coordinate `json:"boundary"`
	Values     map[string]float64  `json:"values,omitempty"`
}

// StatusResponse - состояние наборов данных и конвейера
type StatusResponse struct {
	Datasets   []domain.DatasetStatus `json:"datasets"`
	Ready      bool                   `json:"ready"`
	LayerSetID string                 `json:"layer_set_id,omitempty"`
	Generation uint64                 `json:"generation"`
	ComputedAt *time.Time             `json:"computed_at,omitempty"`
	Settings   domain.Settings        `json:"settings"`
}
