// Package hexgrid - тонкая обёртка над H3: ячейка по координате и обратно.
package hexgrid

import (
	"fmt"

	"github.com/transit-density/internal/domain"
	"github.com/uber/h3-go/v3"
)

const (
	MinResolution = 0
	MaxResolution = 15
)

// ValidateResolution проверяет, что разрешение поддерживается H3
func ValidateResolution(res int) error {
	if res < MinResolution || res > MaxResolution {
		return fmt.Errorf("resolution %d out of range [%d, %d]", res, MinResolution, MaxResolution)
	}
	return nil
}

// CellID возвращает строковый идентификатор ячейки, содержащей точку
func CellID(lat, lon float64, res int) (string, error) {
	if err := ValidateResolution(res); err != nil {
		return "", err
	}
	if !domain.ValidCoordinate(lat, lon) {
		return "", fmt.Errorf("invalid coordinate (%f, %f)", lat, lon)
	}

	index := h3.FromGeo(h3.GeoCoord{Latitude: lat, Longitude: lon}, res)
	if index == 0 {
		return "", fmt.Errorf("h3 returned no cell for (%f, %f)", lat, lon)
	}
	return h3.ToString(index), nil
}

// Center возвращает центр ячейки
func Center(cellID string) (domain.Coordinate, error) {
	index, err := parse(cellID)
	if err != nil {
		return domain.Coordinate{}, err
	}
	c := h3.ToGeo(index)
	return domain.Coordinate{Lat: c.Latitude, Lon: c.Longitude}, nil
}

// Boundary возвращает вершины шестиугольника (пятиугольника для пентагонов)
func Boundary(cellID string) ([]domain.Coordinate, error) {
	index, err := parse(cellID)
	if err != nil {
		return nil, err
	}
	boundary := h3.ToGeoBoundary(index)
	result := make([]domain.Coordinate, len(boundary))
	for i, v := range boundary {
		result[i] = domain.Coordinate{Lat: v.Latitude, Lon: v.Longitude}
	}
	return result, nil
}

// Resolution возвращает разрешение ячейки
func Resolution(cellID string) (int, error) {
	index, err := parse(cellID)
	if err != nil {
		return 0, err
	}
	return h3.Resolution(index), nil
}

func parse(cellID string) (h3.H3Index, error) {
	index := h3.FromString(cellID)
	if index == 0 || !h3.IsValid(index) {
		return 0, fmt.Errorf("invalid cell id %q", cellID)
	}
	return index, nil
}
