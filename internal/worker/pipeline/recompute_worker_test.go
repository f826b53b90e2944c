package pipeline_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/transit-density/internal/domain"
	apperrors "github.com/transit-density/internal/pkg/errors"
	"github.com/transit-density/internal/worker/pipeline"
)

type countingRecomputer struct {
	calls atomic.Int32
	err   error
}

func (r *countingRecomputer) Recompute(ctx context.Context) (*domain.LayerSet, error) {
	n := r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.LayerSet{Generation: uint64(n)}, nil
}

func startWorker(t *testing.T, w *pipeline.RecomputeWorker) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	return func() {
		require.NoError(t, w.Stop())
		require.NoError(t, <-done)
		cancel()
	}
}

func TestRecomputeWorker_CoalescesBurst(t *testing.T) {
	r := &countingRecomputer{}
	w := pipeline.NewRecomputeWorker(r, 50*time.Millisecond, zap.NewNop())
	stop := startWorker(t, w)
	defer stop()

	for i := 0; i < 10; i++ {
		w.Trigger()
		w.OnDatasetChange(domain.CategoryPopulation)
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// quiet period: no further runs
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), r.calls.Load())

	w.Trigger()
	assert.Eventually(t, func() bool { return r.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestRecomputeWorker_GatedTriggerIsDropped(t *testing.T) {
	r := &countingRecomputer{err: apperrors.ErrDatasetsNotReady}
	w := pipeline.NewRecomputeWorker(r, time.Millisecond, zap.NewNop())
	stop := startWorker(t, w)
	defer stop()

	w.Trigger()
	assert.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 2*time.Millisecond)

	// no retry without a new trigger
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestRecomputeWorker_NoTriggerNoRun(t *testing.T) {
	r := &countingRecomputer{}
	w := pipeline.NewRecomputeWorker(r, 0, zap.NewNop())
	stop := startWorker(t, w)

	time.Sleep(20 * time.Millisecond)
	stop()
	assert.Zero(t, r.calls.Load())
}
