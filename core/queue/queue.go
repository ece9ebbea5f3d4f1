package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// job is a queued unit of work.
type job struct {
	name string
	run  func(ctx context.Context)
}

// Worker is a single-consumer FIFO job runner. Jobs are executed one at a
// time in arrival order; a failure inside a job never stops the worker.
// There is no priority, cancellation or timeout: a stalled job stalls the
// whole queue, trading throughput for strict write ordering.
type Worker struct {
	logger *zap.Logger

	mu       sync.Mutex
	idle     *sync.Cond
	backlog  []job
	draining bool
}

// NewWorker creates an idle worker. It owns all of its state; callers inject
// it wherever jobs need to be enqueued.
func NewWorker(logger *zap.Logger) *Worker {
	w := &Worker{logger: logger}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// Enqueue appends a job to the backlog. If the worker is idle a drain
// goroutine is started; if it is already draining the backlog simply grows
// and the running drain will pick the job up in order.
func (w *Worker) Enqueue(name string, run func(ctx context.Context)) {
	w.mu.Lock()
	w.backlog = append(w.backlog, job{name: name, run: run})
	if w.draining {
		w.mu.Unlock()
		return
	}
	w.draining = true
	w.mu.Unlock()

	go w.drain()
}

// drain runs queued jobs until the backlog is empty, then returns the worker
// to idle. Each job runs inside a recover boundary so a panic is logged and
// the next job still executes.
func (w *Worker) drain() {
	for {
		w.mu.Lock()
		if len(w.backlog) == 0 {
			w.draining = false
			w.idle.Broadcast()
			w.mu.Unlock()
			return
		}
		next := w.backlog[0]
		w.backlog = w.backlog[1:]
		w.mu.Unlock()

		w.runOne(next)
	}
}

func (w *Worker) runOne(j job) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Job panicked",
				zap.String("job", j.name),
				zap.Any("panic", r),
			)
		}
	}()

	w.logger.Debug("Job started", zap.String("job", j.name))
	j.run(context.Background())
	w.logger.Debug("Job finished", zap.String("job", j.name))
}

// Len returns the number of jobs waiting in the backlog. The currently
// running job, if any, is not counted.
func (w *Worker) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.backlog)
}

// Idle reports whether the worker has drained its backlog.
func (w *Worker) Idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.draining
}

// Wait blocks until the worker is idle. Used by the resync command and by
// tests; the HTTP path never waits.
func (w *Worker) Wait() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.draining {
		w.idle.Wait()
	}
}
