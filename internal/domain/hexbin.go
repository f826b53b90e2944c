package domain

import "sort"

// HexBin - агрегат значений по ячейкам H3 одного разрешения.
// После построения не изменяется: новый проход агрегации создаёт новый HexBin.
type HexBin struct {
	Resolution int                `json:"resolution"`
	Counts     map[string]float64 `json:"cells"`
}

// Get возвращает значение ячейки; отсутствующая ячейка равна 0
func (b HexBin) Get(cellID string) float64 {
	return b.Counts[cellID]
}

// Len - количество непустых ячеек
func (b HexBin) Len() int {
	return len(b.Counts)
}

// CellIDs возвращает идентификаторы ячеек в лексикографическом порядке
func (b HexBin) CellIDs() []string {
	ids := make([]string, 0, len(b.Counts))
	for id := range b.Counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DiffBin - разность двух HexBin в одной ячейке (countA - countB)
type DiffBin struct {
	CellID string     `json:"cell_id"`
	Diff   float64    `json:"diff"`
	Center Coordinate `json:"center"`
}

// RankedCell - ячейка из Top-K с центром для маркера на карте
type RankedCell struct {
	CellID string     `json:"cell_id"`
	Diff   float64    `json:"diff"`
	Center Coordinate `json:"center"`
}

// Pair - упорядоченная пара наборов данных; положительная разность означает A > B
type Pair struct {
	A Category `json:"a"`
	B Category `json:"b"`
}

// Name - стабильное имя пары, используется в URL и ключах
func (p Pair) Name() string {
	return string(p.A) + "-" + string(p.B)
}

var (
	PairEntertainmentPopulation = Pair{A: CategoryEntertainment, B: CategoryPopulation}
	PairVehiclePopulation       = Pair{A: CategoryVehicle, B: CategoryPopulation}
	PairEntertainmentVehicle    = Pair{A: CategoryEntertainment, B: CategoryVehicle}
)

// Pairs - все сравниваемые пары
var Pairs = []Pair{PairEntertainmentPopulation, PairVehiclePopulation, PairEntertainmentVehicle}

// ParsePair находит пару по имени
func ParsePair(name string) (Pair, bool) {
	for _, p := range Pairs {
		if p.Name() == name {
			return p, true
		}
	}
	return Pair{}, false
}
