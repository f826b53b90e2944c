package density

import (
	"fmt"
	"sort"

	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/hexgrid"
)

// Diff вычисляет a - b по объединению ячеек обоих агрегатов (отсутствующая ячейка = 0).
// Результат упорядочен по идентификатору ячейки и содержит центр каждой ячейки.
func Diff(a, b domain.HexBin) ([]domain.DiffBin, error) {
	if a.Resolution != b.Resolution {
		return nil, fmt.Errorf("cannot diff bins of different resolutions: %d and %d", a.Resolution, b.Resolution)
	}

	keys := make(map[string]struct{}, len(a.Counts)+len(b.Counts))
	for id := range a.Counts {
		keys[id] = struct{}{}
	}
	for id := range b.Counts {
		keys[id] = struct{}{}
	}

	ids := make([]string, 0, len(keys))
	for id := range keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]domain.DiffBin, 0, len(ids))
	for _, id := range ids {
		center, err := hexgrid.Center(id)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", id, err)
		}
		result = append(result, domain.DiffBin{
			CellID: id,
			Diff:   a.Get(id) - b.Get(id),
			Center: center,
		})
	}

	return result, nil
}

// Scale умножает каждую разность на factor. Входной срез не изменяется.
func Scale(diffs []domain.DiffBin, factor float64) []domain.DiffBin {
	scaled := make([]domain.DiffBin, len(diffs))
	for i, d := range diffs {
		d.Diff *= factor
		scaled[i] = d
	}
	return scaled
}
