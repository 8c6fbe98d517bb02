// Package worker runs post-commit side effects and periodic maintenance
// outside the request path.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskFunc is a unit of background work.
type TaskFunc func(ctx context.Context) error

// Dispatcher accepts background tasks. Submit never blocks; it reports
// false when the task was dropped.
type Dispatcher interface {
	Submit(name string, fn TaskFunc) bool
}

// Config holds worker configuration
type Config struct {
	// WorkerID identifies this worker instance in logs
	WorkerID string

	// MaxConcurrency is the maximum number of tasks to run concurrently
	MaxConcurrency int

	// QueueSize bounds the number of tasks waiting to run
	QueueSize int

	// TaskTimeout caps each task's run time
	TaskTimeout time.Duration

	// ShutdownTimeout is how long Start waits for in-flight tasks after
	// its context is cancelled
	ShutdownTimeout time.Duration
}

type task struct {
	name string
	fn   TaskFunc
}

type schedule struct {
	name     string
	interval time.Duration
	fn       TaskFunc
}

// Worker processes background tasks
type Worker struct {
	config    Config
	queue     chan task
	schedules []schedule
	inflight  sync.WaitGroup
	logger    *slog.Logger
}

var _ Dispatcher = (*Worker)(nil)

// New creates a new background worker
func New(config Config, logger *slog.Logger) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = 30 * time.Second
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &Worker{
		config: config,
		queue:  make(chan task, config.QueueSize),
		logger: logger.With("worker_id", config.WorkerID),
	}
}

// Submit queues fn. It returns false when the queue is full.
func (w *Worker) Submit(name string, fn TaskFunc) bool {
	select {
	case w.queue <- task{name: name, fn: fn}:
		return true
	default:
		w.logger.Warn("task dropped, queue full", "task", name)
		return false
	}
}

// Every registers fn to run on a fixed interval once Start is called.
func (w *Worker) Every(name string, interval time.Duration, fn TaskFunc) {
	w.schedules = append(w.schedules, schedule{name: name, interval: interval, fn: fn})
}

// Start processes tasks until the context is cancelled, then waits up to
// ShutdownTimeout for in-flight tasks.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"max_concurrency", w.config.MaxConcurrency,
		"queue_size", w.config.QueueSize,
		"schedules", len(w.schedules),
	)

	// Tasks outlive the request that submitted them, so they run on a
	// context that is only cancelled at shutdown.
	runCtx, cancelRun := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelRun()

	for _, s := range w.schedules {
		go w.runSchedule(ctx, s)
	}

	sem := make(chan struct{}, w.config.MaxConcurrency)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down")
			w.drain(runCtx, sem)
			return ctx.Err()

		case t := <-w.queue:
			w.spawn(runCtx, sem, t)
		}
	}
}

func (w *Worker) spawn(ctx context.Context, sem chan struct{}, t task) {
	sem <- struct{}{}
	w.inflight.Add(1)
	go func() {
		defer func() { <-sem }()
		defer w.inflight.Done()
		w.process(ctx, t)
	}()
}

// drain runs whatever is still queued, then waits for in-flight tasks.
func (w *Worker) drain(ctx context.Context, sem chan struct{}) {
queued:
	for {
		select {
		case t := <-w.queue:
			w.spawn(ctx, sem, t)
		default:
			break queued
		}
	}

	done := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(w.config.ShutdownTimeout):
		w.logger.Warn("worker shutdown timed out with tasks in flight")
	}
}

func (w *Worker) runSchedule(ctx context.Context, s schedule) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Submit(s.name, s.fn)
		}
	}
}

// process runs a single task with a timeout and recovers panics.
func (w *Worker) process(ctx context.Context, t task) {
	taskCtx, cancel := context.WithTimeout(ctx, w.config.TaskTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("task panicked", "task", t.name, "panic", r)
		}
	}()

	if err := t.fn(taskCtx); err != nil {
		w.logger.Error("task failed",
			"task", t.name,
			"duration", time.Since(start),
			"error", err,
		)
		return
	}

	w.logger.Debug("task completed", "task", t.name, "duration", time.Since(start))
}

// Inline runs tasks synchronously on the caller's goroutine. Used by CLI
// commands and tests.
type Inline struct {
	Logger *slog.Logger
}

func (i Inline) Submit(name string, fn TaskFunc) bool {
	if err := fn(context.Background()); err != nil && i.Logger != nil {
		i.Logger.Error("task failed", "task", name, "error", err)
	}
	return true
}
