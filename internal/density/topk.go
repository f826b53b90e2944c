package density

import (
	"fmt"
	"math"
	"sort"

	"github.com/transit-density/internal/domain"
)

// TopK возвращает k ячеек с наибольшим |diff| по убыванию.
// При равенстве сохраняется исходный порядок; входной срез не изменяется.
func TopK(diffs []domain.DiffBin, k int) ([]domain.RankedCell, error) {
	if k < 0 {
		return nil, fmt.Errorf("k must be non-negative, got %d", k)
	}

	ordered := make([]domain.DiffBin, len(diffs))
	copy(ordered, diffs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return math.Abs(ordered[i].Diff) > math.Abs(ordered[j].Diff)
	})

	if k > len(ordered) {
		k = len(ordered)
	}

	result := make([]domain.RankedCell, k)
	for i := 0; i < k; i++ {
		result[i] = domain.RankedCell{
			CellID: ordered[i].CellID,
			Diff:   ordered[i].Diff,
			Center: ordered[i].Center,
		}
	}
	return result, nil
}
