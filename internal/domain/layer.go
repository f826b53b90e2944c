package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ScaleFactors - множители разностей для каждой пары, чтобы диапазоны были сопоставимы на карте
type ScaleFactors struct {
	EntertainmentPopulation float64 `json:"entertainment_population" validate:"gt=0"`
	VehiclePopulation       float64 `json:"vehicle_population" validate:"gt=0"`
	EntertainmentVehicle    float64 `json:"entertainment_vehicle" validate:"gt=0"`
}

// For возвращает множитель пары
func (s ScaleFactors) For(p Pair) float64 {
	switch p {
	case PairEntertainmentPopulation:
		return s.EntertainmentPopulation
	case PairVehiclePopulation:
		return s.VehiclePopulation
	case PairEntertainmentVehicle:
		return s.EntertainmentVehicle
	default:
		return 1
	}
}

// Settings - параметры конвейера агрегации
type Settings struct {
	Resolution           int          `json:"resolution" validate:"min=0,max=15"`
	PopulationNormalizer float64      `json:"population_normalizer" validate:"gt=0"`
	TopK                 int          `json:"top_k" validate:"min=0"`
	Scale                ScaleFactors `json:"scale"`
}

// Finite проверяет, что вещественные параметры конечны: тег gt=0 пропускает +Inf
func (s Settings) Finite() bool {
	for _, v := range []float64{
		s.PopulationNormalizer,
		s.Scale.EntertainmentPopulation,
		s.Scale.VehiclePopulation,
		s.Scale.EntertainmentVehicle,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LayerSet - результат одного прохода конвейера. Заменяется целиком при пересчёте.
type LayerSet struct {
	ID              uuid.UUID               `json:"id"`
	Generation      uint64                  `json:"generation"`
	ComputedAt      time.Time               `json:"computed_at"`
	Settings        Settings                `json:"settings"`
	DatasetVersions map[Category]uint64     `json:"dataset_versions"`
	Bins            map[Category]HexBin     `json:"bins"`
	Diffs           map[string][]DiffBin    `json:"diffs"`
	Top             map[string][]RankedCell `json:"top"`
}

// LayerDescriptor - описание слоя для переключателя и легенды в UI
type LayerDescriptor struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Legend      string    `json:"legend"`
	Labels      [2]string `json:"labels"`
	Kind        string    `json:"kind"`
}

const (
	LayerKindHeat = "heat"
	LayerKindDiff = "diff"
)

// LayerCatalog - набор слоёв, доступных в переключателе
var LayerCatalog = []LayerDescriptor{
	{
		Name:        string(CategoryPopulation),
		Title:       "Population",
		Description: "Population density per hexagon, normalized by the population normalizer.",
		Legend:      "bg-gradient-to-r from-yellow-100 to-red-700",
		Labels:      [2]string{"Sparse", "Dense"},
		Kind:        LayerKindHeat,
	},
	{
		Name:        string(CategoryEntertainment),
		Title:       "Entertainment",
		Description: "Number of entertainment venues per hexagon.",
		Legend:      "bg-gradient-to-r from-purple-100 to-purple-800",
		Labels:      [2]string{"Few", "Many"},
		Kind:        LayerKindHeat,
	},
	{
		Name:        string(CategoryVehicle),
		Title:       "Transit",
		Description: "Live transit vehicle positions per hexagon.",
		Legend:      "bg-gradient-to-r from-blue-100 to-blue-800",
		Labels:      [2]string{"Few", "Many"},
		Kind:        LayerKindHeat,
	},
	{
		Name:        PairEntertainmentPopulation.Name(),
		Title:       "Entertainment vs Population",
		Description: "Where entertainment venues exceed (positive) or lag behind (negative) the resident population.",
		Legend:      "bg-gradient-to-r from-blue-600 via-white to-red-600",
		Labels:      [2]string{"Underserved", "Overserved"},
		Kind:        LayerKindDiff,
	},
	{
		Name:        PairVehiclePopulation.Name(),
		Title:       "Transit vs Population",
		Description: "Where transit vehicles exceed (positive) or lag behind (negative) the resident population.",
		Legend:      "bg-gradient-to-r from-blue-600 via-white to-red-600",
		Labels:      [2]string{"Underserved", "Overserved"},
		Kind:        LayerKindDiff,
	},
	{
		Name:        PairEntertainmentVehicle.Name(),
		Title:       "Entertainment vs Transit",
		Description: "Where entertainment venues exceed (positive) or lag behind (negative) transit coverage.",
		Legend:      "bg-gradient-to-r from-blue-600 via-white to-red-600",
		Labels:      [2]string{"Transit-rich", "Venue-rich"},
		Kind:        LayerKindDiff,
	},
}

// FindLayer ищет описание слоя по имени
func FindLayer(name string) (LayerDescriptor, bool) {
	for _, l := range LayerCatalog {
		if l.Name == name {
			return l, true
		}
	}
	return LayerDescriptor{}, false
}
