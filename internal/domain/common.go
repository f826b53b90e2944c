package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate - географическая точка в градусах WGS84
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position возвращает координату в порядке [lon, lat], как ожидают слои deck.gl
func (c Coordinate) Position() [2]float64 {
	return [2]float64{c.Lon, c.Lat}
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains проверяет попадание точки в прямоугольник (границы включительно)
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// ParseBoundingBox разбирает строку вида "minLat,minLon,maxLat,maxLon".
// Пустая строка означает отсутствие фильтра (nil, nil).
func ParseBoundingBox(s string) (*BoundingBox, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bounding box must have 4 comma-separated values, got %d", len(parts))
	}

	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bounding box value %q: %w", p, err)
		}
		values[i] = v
	}

	box := &BoundingBox{MinLat: values[0], MinLon: values[1], MaxLat: values[2], MaxLon: values[3]}
	if box.MinLat > box.MaxLat || box.MinLon > box.MaxLon {
		return nil, fmt.Errorf("bounding box min corner must not exceed max corner: %s", s)
	}
	if !ValidCoordinate(box.MinLat, box.MinLon) || !ValidCoordinate(box.MaxLat, box.MaxLon) {
		return nil, fmt.Errorf("bounding box out of range: %s", s)
	}

	return box, nil
}
