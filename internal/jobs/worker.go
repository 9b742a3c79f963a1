package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/ukmstimbara/inventaris-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and scheduled tasks
type Worker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	queue    chan Job
	asyncSem chan struct{}
	stats    WorkerStats
	statsMu  sync.RWMutex
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs   int   `json:"active_jobs"`
	FinishedJobs int64 `json:"finished_jobs"`
	FailedJobs   int64 `json:"failed_jobs"`
	QueueLength  int   `json:"queue_length"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	asyncLimit := numWorkers * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:      ctx,
		cancel:   cancel,
		queue:    make(chan Job, 100),
		asyncSem: make(chan struct{}, asyncLimit),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is
// full the job runs synchronously instead of being dropped.
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("worker queue full, running job synchronously")
		if err := job(w.ctx); err != nil {
			logger.Error("job failed", "error", err)
		}
	}
}

// EnqueueAsync runs a job in its own goroutine, bounded by a semaphore.
// The wait group is joined before the goroutine starts so Shutdown cannot
// miss a job enqueued just ahead of it.
func (w *Worker) EnqueueAsync(job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.asyncSem <- struct{}{}
		defer func() { <-w.asyncSem }()

		w.trackJobStart()
		defer w.trackJobEnd()

		defer func() {
			if r := recover(); r != nil {
				logger.Error("async job panic", "panic", r)
				w.trackJobFailure()
			}
		}()

		if err := job(w.ctx); err != nil {
			logger.Error("async job failed", "error", err)
			w.trackJobFailure()
		}
	}()
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.trackJobStart()
			start := time.Now()
			if err := job(w.ctx); err != nil {
				logger.Error("job failed", "worker", workerID, "error", err)
				w.trackJobFailure()
			} else {
				logger.Debug("job completed", "worker", workerID, "duration", time.Since(start))
			}
			w.trackJobEnd()
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after
// the interval, not at startup.
func (w *Worker) ScheduleEvery(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduledJob(job)
			}
		}
	}()
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals
func (w *Worker) ScheduleEveryImmediate(interval time.Duration, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.runScheduledJob(job)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduledJob(job)
			}
		}
	}()
}

func (w *Worker) runScheduledJob(job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scheduled job panic", "panic", r)
			w.trackJobFailure()
			w.trackJobEnd()
		}
	}()
	w.trackJobStart()
	start := time.Now()
	if err := job(w.ctx); err != nil {
		logger.Error("scheduled job failed", "error", err)
		w.trackJobFailure()
	} else {
		logger.Info("scheduled job completed", "duration", time.Since(start))
	}
	w.trackJobEnd()
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.cancel()
	close(w.queue)
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics. FinishedJobs counts every
// job that ran to the end; FailedJobs is the subset that returned an error.
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.FinishedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
