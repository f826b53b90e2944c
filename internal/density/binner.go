package density

import (
	"fmt"
	"math"
	"sort"

	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/hexgrid"
)

type cellAccumulator struct {
	count             int64
	populationWeights []float64
}

// Aggregate раскладывает точки по ячейкам H3 заданного разрешения.
// Точка населения добавляет weight/populationNormalizer, остальные - 1.
//
// Результат не зависит от порядка точек бит в бит: счётчики накапливаются
// целыми, а веса населения в ячейке суммируются в отсортированном порядке.
func Aggregate(points []domain.GeoPoint, resolution int, populationNormalizer float64) (domain.HexBin, error) {
	if err := hexgrid.ValidateResolution(resolution); err != nil {
		return domain.HexBin{}, err
	}
	if err := validateNormalizer(populationNormalizer); err != nil {
		return domain.HexBin{}, err
	}

	acc := make(map[string]*cellAccumulator)
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		cellID, err := hexgrid.CellID(p.Lat, p.Lon, resolution)
		if err != nil {
			continue
		}

		a, ok := acc[cellID]
		if !ok {
			a = &cellAccumulator{}
			acc[cellID] = a
		}

		switch p.Category {
		case domain.CategoryPopulation:
			a.populationWeights = append(a.populationWeights, p.Weight)
		case domain.CategoryEntertainment, domain.CategoryVehicle:
			a.count++
		default:
			return domain.HexBin{}, fmt.Errorf("unknown category %q", string(p.Category))
		}
	}

	counts := make(map[string]float64, len(acc))
	for cellID, a := range acc {
		counts[cellID] = float64(a.count) + sortedSum(a.populationWeights)/populationNormalizer
	}

	return domain.HexBin{Resolution: resolution, Counts: counts}, nil
}

func sortedSum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

func validateNormalizer(n float64) error {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return fmt.Errorf("population normalizer must be a positive finite number, got %v", n)
	}
	return nil
}
