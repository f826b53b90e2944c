package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/usecase"
)

func record(fields ...string) domain.Record {
	r := domain.Record{}
	for i := 0; i+1 < len(fields); i += 2 {
		r[fields[i]] = fields[i+1]
	}
	return r
}

func TestDatasetUseCase_LoadAll(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("loads every source in batches", func(t *testing.T) {
		store := usecase.NewDatasetStore()

		var mu sync.Mutex
		appends := 0
		store.OnChange(func(c domain.Category) {
			if c == domain.CategoryEntertainment {
				mu.Lock()
				appends++
				mu.Unlock()
			}
		})

		popSrc := &MockRecordSource{name: "population.csv"}
		popSrc.On("Load", mock.Anything).Return([]domain.Record{
			record("latitude", "45.4236", "longitude", "-75.7009", "count", "120"),
			record("latitude", "45.4420", "longitude", "-75.6650", "count", "not-a-number"),
			record("latitude", "10.0", "longitude", "10.0", "count", "5"), // outside bbox
		}, nil)

		poiSrc := &MockRecordSource{name: "entertainment.csv"}
		poiSrc.On("Load", mock.Anything).Return([]domain.Record{
			record("name", "Zaphod's", "latitude", "45.4280", "longitude", "-75.6920"),
			record("name", "Mercury Lounge", "latitude", "45.4285", "longitude", "-75.6925"),
			record("name", "Arts Court", "latitude", "45.4270", "longitude", "-75.6900"),
			record("name", "broken", "latitude", "", "longitude", "-75.6900"),
		}, nil)

		bounds, err := domain.ParseBoundingBox("45.20,-76.10,45.60,-75.40")
		require.NoError(t, err)

		uc := usecase.NewDatasetUseCase(store, []usecase.DatasetSource{
			{Category: domain.CategoryPopulation, Source: popSrc},
			{Category: domain.CategoryEntertainment, Source: poiSrc},
		}, density.LoadOptions{PopulationBounds: bounds}, 2, logger)

		uc.LoadAll(ctx)

		pop := store.Buffer(domain.CategoryPopulation).Snapshot()
		require.Len(t, pop.Points, 1)
		assert.Equal(t, 120.0, pop.Points[0].Weight)
		assert.Equal(t, domain.DatasetReady, store.Buffer(domain.CategoryPopulation).State())

		assert.Len(t, store.Buffer(domain.CategoryEntertainment).Snapshot().Points, 3)
		assert.Equal(t, domain.DatasetReady, store.Buffer(domain.CategoryEntertainment).State())

		// 3 points with batch size 2: two appends plus MarkReady
		mu.Lock()
		assert.Equal(t, 3, appends)
		mu.Unlock()

		assert.Equal(t, domain.DatasetPending, store.Buffer(domain.CategoryVehicle).State())
		popSrc.AssertExpectations(t)
		poiSrc.AssertExpectations(t)
	})

	t.Run("one failure does not affect other loads", func(t *testing.T) {
		store := usecase.NewDatasetStore()

		popSrc := &MockRecordSource{}
		popSrc.On("Load", mock.Anything).Return(nil, errors.New("open population.csv: no such file or directory"))

		vehSrc := &MockRecordSource{}
		vehSrc.On("Load", mock.Anything).Return([]domain.Record{
			record("vehicle id", "4301", "latitude", "45.4215", "longitude", "-75.6972"),
		}, nil)

		uc := usecase.NewDatasetUseCase(store, []usecase.DatasetSource{
			{Category: domain.CategoryPopulation, Source: popSrc},
			{Category: domain.CategoryVehicle, Source: vehSrc},
		}, density.LoadOptions{}, 0, logger)

		uc.LoadAll(ctx)

		popStatus := store.Buffer(domain.CategoryPopulation).Status()
		assert.Equal(t, domain.DatasetFailed, popStatus.State)
		assert.Contains(t, popStatus.Error, "no such file")

		assert.Equal(t, domain.DatasetReady, store.Buffer(domain.CategoryVehicle).State())
		assert.Len(t, store.Buffer(domain.CategoryVehicle).Snapshot().Points, 1)
	})

	t.Run("cancelled context marks dataset failed", func(t *testing.T) {
		store := usecase.NewDatasetStore()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		src := &MockRecordSource{}
		src.On("Load", mock.Anything).Return([]domain.Record{
			record("latitude", "45.4215", "longitude", "-75.6972"),
		}, nil)

		uc := usecase.NewDatasetUseCase(store, []usecase.DatasetSource{
			{Category: domain.CategoryEntertainment, Source: src},
		}, density.LoadOptions{}, 10, logger)

		err := uc.Load(cctx, usecase.DatasetSource{Category: domain.CategoryEntertainment, Source: src})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, domain.DatasetFailed, store.Buffer(domain.CategoryEntertainment).State())
	})
}

func TestDatasetUseCase_ApplyVehiclePositions(t *testing.T) {
	store := usecase.NewDatasetStore()
	uc := usecase.NewDatasetUseCase(store, nil, density.LoadOptions{}, 0, zap.NewNop())

	applied, err := uc.ApplyVehiclePositions(2, []domain.Record{
		record("vehicle id", "4301", "latitude", "45.4215", "longitude", "-75.6972"),
		record("vehicle id", "4410", "latitude", "", "longitude", ""),
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, store.Buffer(domain.CategoryVehicle).Snapshot().Points, 1)

	applied, err = uc.ApplyVehiclePositions(1, []domain.Record{
		record("vehicle id", "1", "latitude", "45.1", "longitude", "-75.1"),
		record("vehicle id", "2", "latitude", "45.2", "longitude", "-75.2"),
	})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Len(t, store.Buffer(domain.CategoryVehicle).Snapshot().Points, 1)

	assert.False(t, uc.MarkVehicleFeedFailed(errors.New("timeout")), "ready dataset stays ready")
}
