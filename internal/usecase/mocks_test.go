package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/transit-density/internal/domain"
)

// MockRecordSource is a mock of RecordSource
type MockRecordSource struct {
	mock.Mock
	name string
}

func (m *MockRecordSource) Load(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordSource) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

// MockLayerPublisher is a mock of LayerPublisher
type MockLayerPublisher struct {
	mock.Mock
}

func (m *MockLayerPublisher) PublishLayers(ctx context.Context, layers *domain.LayerSet) error {
	args := m.Called(ctx, layers)
	return args.Error(0)
}
