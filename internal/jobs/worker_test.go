package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorker_EnqueueAsync_ShutdownWaitsForJobs(t *testing.T) {
	worker := NewWorker(2)

	var ran int64
	for i := 0; i < 20; i++ {
		worker.EnqueueAsync(func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	worker.Shutdown()
	assert.Equal(t, int64(20), atomic.LoadInt64(&ran))
}

func TestWorker_EnqueueAsync_RecoversFromPanic(t *testing.T) {
	worker := NewWorker(1)

	done := make(chan struct{})
	worker.EnqueueAsync(func(ctx context.Context) error {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking job never ran")
	}
	worker.Shutdown()

	assert.Equal(t, int64(1), worker.GetStats().FailedJobs)
}

func TestWorker_Enqueue_CountsFailures(t *testing.T) {
	worker := NewWorker(1)

	worker.Enqueue(func(ctx context.Context) error {
		return errors.New("gagal")
	})
	worker.Enqueue(func(ctx context.Context) error {
		return nil
	})

	assert.Eventually(t, func() bool {
		stats := worker.GetStats()
		return stats.FinishedJobs == 2 && stats.FailedJobs == 1
	}, time.Second, 10*time.Millisecond)

	worker.Shutdown()
}
