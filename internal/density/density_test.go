package density_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/hexgrid"
)

const testResolution = 8

// Ottawa downtown and a few nearby spots, far enough apart to land in different res-8 cells
var (
	parliament = domain.Coordinate{Lat: 45.4236, Lon: -75.7009}
	byward     = domain.Coordinate{Lat: 45.4420, Lon: -75.6650}
	glebe      = domain.Coordinate{Lat: 45.4015, Lon: -75.6870}
	orleans    = domain.Coordinate{Lat: 45.4729, Lon: -75.5155}
)

func cellOf(t *testing.T, c domain.Coordinate) string {
	t.Helper()
	id, err := hexgrid.CellID(c.Lat, c.Lon, testResolution)
	require.NoError(t, err)
	return id
}

func TestLoadPoints(t *testing.T) {
	t.Run("population row with bad latitude is dropped", func(t *testing.T) {
		records := []domain.Record{
			{"latitude": "bad", "longitude": "-75.70", "count": "10"},
			{"latitude": "45.42", "longitude": "-75.70", "count": "12"},
		}

		points, err := density.LoadPoints(records, domain.CategoryPopulation, density.LoadOptions{})

		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 12.0, points[0].Weight)
		assert.Equal(t, domain.CategoryPopulation, points[0].Category)
	})

	t.Run("missing, non-finite and out of range coordinates are dropped", func(t *testing.T) {
		records := []domain.Record{
			{"name": "no coords"},
			{"name": "empty", "latitude": "", "longitude": ""},
			{"name": "nan", "latitude": "NaN", "longitude": "-75.7"},
			{"name": "far", "latitude": "95", "longitude": "-75.7"},
			{"name": "ok", "latitude": "45.4", "longitude": "-75.7"},
		}

		points, err := density.LoadPoints(records, domain.CategoryEntertainment, density.LoadOptions{})

		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 1.0, points[0].Weight)
	})

	t.Run("population bounding box filters only population", func(t *testing.T) {
		box := &domain.BoundingBox{MinLat: 45.0, MinLon: -76.0, MaxLat: 45.6, MaxLon: -75.0}
		records := []domain.Record{
			{"latitude": "45.42", "longitude": "-75.70", "count": "3"},
			{"latitude": "43.65", "longitude": "-79.38", "count": "3"},
		}
		opts := density.LoadOptions{PopulationBounds: box}

		population, err := density.LoadPoints(records, domain.CategoryPopulation, opts)
		require.NoError(t, err)
		assert.Len(t, population, 1)

		vehicles, err := density.LoadPoints(records, domain.CategoryVehicle, opts)
		require.NoError(t, err)
		assert.Len(t, vehicles, 2)
	})

	t.Run("population row without a usable count is dropped", func(t *testing.T) {
		records := []domain.Record{
			{"latitude": "45.42", "longitude": "-75.70"},
			{"latitude": "45.42", "longitude": "-75.70", "count": "many"},
			{"latitude": "45.42", "longitude": "-75.70", "count": "-4"},
		}

		points, err := density.LoadPoints(records, domain.CategoryPopulation, density.LoadOptions{})

		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("field names are case insensitive", func(t *testing.T) {
		r := domain.NewRecord([]string{"Vehicle Id", " Latitude ", "LONGITUDE"}, []string{"42", "45.4", "-75.7"})

		points, err := density.LoadPoints([]domain.Record{r}, domain.CategoryVehicle, density.LoadOptions{})

		require.NoError(t, err)
		assert.Len(t, points, 1)
	})

	t.Run("unknown category is an error", func(t *testing.T) {
		_, err := density.LoadPoints(nil, domain.Category("weather"), density.LoadOptions{})
		assert.Error(t, err)
	})
}

func TestAggregate(t *testing.T) {
	t.Run("three points at one coordinate make one cell with count 3", func(t *testing.T) {
		points := []domain.GeoPoint{
			{Category: domain.CategoryEntertainment, Lat: parliament.Lat, Lon: parliament.Lon, Weight: 1},
			{Category: domain.CategoryEntertainment, Lat: parliament.Lat, Lon: parliament.Lon, Weight: 1},
			{Category: domain.CategoryEntertainment, Lat: parliament.Lat, Lon: parliament.Lon, Weight: 1},
		}

		bin, err := density.Aggregate(points, testResolution, 5)

		require.NoError(t, err)
		require.Equal(t, 1, bin.Len())
		assert.Equal(t, 3.0, bin.Get(cellOf(t, parliament)))
		assert.Equal(t, testResolution, bin.Resolution)
	})

	t.Run("population points add weight over normalizer", func(t *testing.T) {
		points := []domain.GeoPoint{
			{Category: domain.CategoryPopulation, Lat: parliament.Lat, Lon: parliament.Lon, Weight: 10},
			{Category: domain.CategoryPopulation, Lat: parliament.Lat, Lon: parliament.Lon, Weight: 20},
			{Category: domain.CategoryPopulation, Lat: parliament.Lat, Lon: parliament.Lon, Weight: 5},
		}

		bin, err := density.Aggregate(points, testResolution, 5)

		require.NoError(t, err)
		require.Equal(t, 1, bin.Len())
		assert.InDelta(t, 7.0, bin.Get(cellOf(t, parliament)), 1e-12)
	})

	t.Run("invalid coordinates are skipped", func(t *testing.T) {
		points := []domain.GeoPoint{
			{Category: domain.CategoryVehicle, Lat: math.NaN(), Lon: -75.7, Weight: 1},
			{Category: domain.CategoryVehicle, Lat: 120, Lon: -75.7, Weight: 1},
			{Category: domain.CategoryVehicle, Lat: glebe.Lat, Lon: glebe.Lon, Weight: 1},
		}

		bin, err := density.Aggregate(points, testResolution, 5)

		require.NoError(t, err)
		assert.Equal(t, 1, bin.Len())
	})

	t.Run("order independent", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		points := make([]domain.GeoPoint, 0, 500)
		for i := 0; i < 500; i++ {
			points = append(points, domain.GeoPoint{
				Category: domain.CategoryPopulation,
				Lat:      45.40 + rng.Float64()*0.05,
				Lon:      -75.72 + rng.Float64()*0.05,
				Weight:   rng.Float64() * 1000,
			})
		}
		shuffled := make([]domain.GeoPoint, len(points))
		copy(shuffled, points)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		first, err := density.Aggregate(points, testResolution, 3)
		require.NoError(t, err)
		second, err := density.Aggregate(shuffled, testResolution, 3)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		_, err := density.Aggregate(nil, 16, 5)
		assert.Error(t, err)

		_, err = density.Aggregate(nil, -1, 5)
		assert.Error(t, err)

		_, err = density.Aggregate(nil, testResolution, 0)
		assert.Error(t, err)

		_, err = density.Aggregate(nil, testResolution, math.NaN())
		assert.Error(t, err)
	})

	t.Run("empty input gives empty bin", func(t *testing.T) {
		bin, err := density.Aggregate(nil, testResolution, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, bin.Len())
	})
}

func TestDiff(t *testing.T) {
	cellA := cellOf(t, parliament)
	cellB := cellOf(t, byward)
	cellC := cellOf(t, orleans)

	population := domain.HexBin{Resolution: testResolution, Counts: map[string]float64{cellA: 10, cellB: 0}}
	entertainment := domain.HexBin{Resolution: testResolution, Counts: map[string]float64{cellA: 2, cellB: 5}}

	t.Run("signed difference per cell", func(t *testing.T) {
		diffs, err := density.Diff(population, entertainment)

		require.NoError(t, err)
		got := toMap(diffs)
		assert.Equal(t, map[string]float64{cellA: 8, cellB: -5}, got)
	})

	t.Run("antisymmetric", func(t *testing.T) {
		ab, err := density.Diff(population, entertainment)
		require.NoError(t, err)
		ba, err := density.Diff(entertainment, population)
		require.NoError(t, err)

		abMap, baMap := toMap(ab), toMap(ba)
		require.Equal(t, len(abMap), len(baMap))
		for id, v := range abMap {
			assert.Equal(t, -v, baMap[id], id)
		}
	})

	t.Run("key set is the union", func(t *testing.T) {
		vehicles := domain.HexBin{Resolution: testResolution, Counts: map[string]float64{cellC: 4}}

		diffs, err := density.Diff(entertainment, vehicles)

		require.NoError(t, err)
		got := toMap(diffs)
		assert.Len(t, got, 3)
		assert.Equal(t, 2.0, got[cellA])
		assert.Equal(t, 5.0, got[cellB])
		assert.Equal(t, -4.0, got[cellC])
	})

	t.Run("carries cell centers", func(t *testing.T) {
		diffs, err := density.Diff(population, entertainment)
		require.NoError(t, err)

		for _, d := range diffs {
			center, err := hexgrid.Center(d.CellID)
			require.NoError(t, err)
			assert.Equal(t, center, d.Center)
		}
	})

	t.Run("resolutions must match", func(t *testing.T) {
		coarse := domain.HexBin{Resolution: 7, Counts: map[string]float64{}}
		_, err := density.Diff(population, coarse)
		assert.Error(t, err)
	})

	t.Run("scale is a separate step and keeps input intact", func(t *testing.T) {
		diffs, err := density.Diff(population, entertainment)
		require.NoError(t, err)

		scaled := density.Scale(diffs, 2.5)

		assert.Equal(t, map[string]float64{cellA: 20, cellB: -12.5}, toMap(scaled))
		assert.Equal(t, map[string]float64{cellA: 8, cellB: -5}, toMap(diffs))
	})
}

func TestTopK(t *testing.T) {
	diffs := []domain.DiffBin{
		{CellID: "a", Diff: 1},
		{CellID: "b", Diff: -7},
		{CellID: "c", Diff: 3},
		{CellID: "d", Diff: 7},
		{CellID: "e", Diff: -0.5},
	}

	t.Run("sorted by magnitude, ties keep input order", func(t *testing.T) {
		top, err := density.TopK(diffs, 3)

		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, "b", top[0].CellID)
		assert.Equal(t, "d", top[1].CellID)
		assert.Equal(t, "c", top[2].CellID)
	})

	t.Run("k of zero is empty", func(t *testing.T) {
		top, err := density.TopK(diffs, 0)
		require.NoError(t, err)
		assert.NotNil(t, top)
		assert.Empty(t, top)
	})

	t.Run("k larger than input returns everything sorted", func(t *testing.T) {
		top, err := density.TopK(diffs, 100)
		require.NoError(t, err)
		require.Len(t, top, len(diffs))
		for i := 1; i < len(top); i++ {
			assert.GreaterOrEqual(t, math.Abs(top[i-1].Diff), math.Abs(top[i].Diff))
		}
	})

	t.Run("result is a subset of input", func(t *testing.T) {
		top, err := density.TopK(diffs, 4)
		require.NoError(t, err)

		byID := toMap(diffs)
		for _, r := range top {
			v, ok := byID[r.CellID]
			require.True(t, ok)
			assert.Equal(t, v, r.Diff)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := make([]domain.DiffBin, len(diffs))
		copy(before, diffs)

		_, err := density.TopK(diffs, 2)

		require.NoError(t, err)
		assert.Equal(t, before, diffs)
	})

	t.Run("negative k is rejected", func(t *testing.T) {
		_, err := density.TopK(diffs, -1)
		assert.Error(t, err)
	})
}

func toMap(diffs []domain.DiffBin) map[string]float64 {
	m := make(map[string]float64, len(diffs))
	for _, d := range diffs {
		m[d.CellID] = d.Diff
	}
	return m
}
