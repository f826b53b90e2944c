package domain

import (
	"fmt"
	"math"
	"strings"
)

// Category - тип набора данных, из которого получена точка
type Category string

const (
	CategoryPopulation    Category = "population"
	CategoryEntertainment Category = "entertainment"
	CategoryVehicle       Category = "vehicle"
)

// Categories - все категории в каноническом порядке
var Categories = []Category{CategoryPopulation, CategoryEntertainment, CategoryVehicle}

// ParseCategory разбирает имя категории. Допускаются синонимы из URL ("vehicles", "poi").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "population":
		return CategoryPopulation, nil
	case "entertainment", "poi":
		return CategoryEntertainment, nil
	case "vehicle", "vehicles":
		return CategoryVehicle, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Validate возвращает ошибку для значения вне перечисления
func (c Category) Validate() error {
	switch c {
	case CategoryPopulation, CategoryEntertainment, CategoryVehicle:
		return nil
	default:
		return fmt.Errorf("unknown category %q", string(c))
	}
}

// GeoPoint - точка набора данных. Неизменяема после создания.
type GeoPoint struct {
	Category Category `json:"category"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Weight   float64  `json:"weight"`
}

// Valid проверяет, что координаты точки конечны и в допустимом диапазоне
func (p GeoPoint) Valid() bool {
	return ValidCoordinate(p.Lat, p.Lon)
}

// ValidCoordinate проверяет широту/долготу, включая NaN и бесконечности
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Record - сырая строка источника: имя поля (в нижнем регистре) -> значение
type Record map[string]string

// NewRecord собирает запись из заголовка и строки CSV.
// Недостающие поля остаются пустыми, лишние отбрасываются.
func NewRecord(header, row []string) Record {
	r := make(Record, len(header))
	for i, name := range header {
		key := normalizeField(name)
		if key == "" {
			continue
		}
		if i < len(row) {
			r[key] = strings.TrimSpace(row[i])
		} else {
			r[key] = ""
		}
	}
	return r
}

// Get возвращает значение поля без учёта регистра имени
func (r Record) Get(field string) (string, bool) {
	v, ok := r[normalizeField(field)]
	return v, ok
}

func normalizeField(name string) string {
	// BOM встречается в первом заголовке файлов, выгруженных из Excel
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}
