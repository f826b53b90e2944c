// Package density содержит конвейер агрегации: загрузка точек, биннинг по H3,
// разность двух сеток и выбор ячеек с наибольшей по модулю разностью.
package density

import (
	"fmt"
	"math"
	"strconv"

	"github.com/transit-density/internal/domain"
)

// Имена полей источников (без учёта регистра)
const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldCount     = "count"
	FieldName      = "name"
	FieldVehicleID = "vehicle id"
)

// LoadOptions - параметры загрузки точек
type LoadOptions struct {
	// PopulationBounds отсекает точки населения вне прямоугольника; nil - без фильтра
	PopulationBounds *domain.BoundingBox
}

// LoadPoints преобразует сырые записи в точки категории.
// Строки с некорректными координатами молча отбрасываются: частичные выгрузки - норма для этих источников.
func LoadPoints(records []domain.Record, category domain.Category, opts LoadOptions) ([]domain.GeoPoint, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	points := make([]domain.GeoPoint, 0, len(records))
	for _, r := range records {
		p, ok, err := pointFromRecord(r, category, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			points = append(points, p)
		}
	}
	return points, nil
}

func pointFromRecord(r domain.Record, category domain.Category, opts LoadOptions) (domain.GeoPoint, bool, error) {
	lat, ok := parseFloatField(r, FieldLatitude)
	if !ok {
		return domain.GeoPoint{}, false, nil
	}
	lon, ok := parseFloatField(r, FieldLongitude)
	if !ok {
		return domain.GeoPoint{}, false, nil
	}
	if !domain.ValidCoordinate(lat, lon) {
		return domain.GeoPoint{}, false, nil
	}

	p := domain.GeoPoint{Category: category, Lat: lat, Lon: lon, Weight: 1}

	switch category {
	case domain.CategoryPopulation:
		count, ok := parseFloatField(r, FieldCount)
		if !ok || count < 0 {
			return domain.GeoPoint{}, false, nil
		}
		if opts.PopulationBounds != nil && !opts.PopulationBounds.Contains(lat, lon) {
			return domain.GeoPoint{}, false, nil
		}
		p.Weight = count
	case domain.CategoryEntertainment, domain.CategoryVehicle:
	default:
		return domain.GeoPoint{}, false, fmt.Errorf("unknown category %q", string(category))
	}

	return p, true, nil
}

func parseFloatField(r domain.Record, field string) (float64, bool) {
	raw, ok := r.Get(field)
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
