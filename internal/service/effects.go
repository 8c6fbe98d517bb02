package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/vitrina/internal/events"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/dukerupert/vitrina/internal/worker"
)

// sideEffects runs best-effort work after a transaction commits. Failures
// are logged and counted, never returned to the caller.
type sideEffects struct {
	dispatcher worker.Dispatcher
	publisher  events.Publisher
	metrics    *telemetry.BusinessMetrics
	logger     *slog.Logger
}

func newSideEffects(d worker.Dispatcher, p events.Publisher, m *telemetry.BusinessMetrics, logger *slog.Logger) sideEffects {
	if logger == nil {
		logger = slog.Default()
	}
	if d == nil {
		d = worker.Inline{Logger: logger}
	}
	if p == nil {
		p = events.Noop{}
	}
	return sideEffects{dispatcher: d, publisher: p, metrics: m, logger: logger}
}

func (e sideEffects) publish(subject string, event any) {
	e.dispatcher.Submit("publish:"+subject, func(ctx context.Context) error {
		err := e.publisher.Publish(ctx, subject, event)
		e.metrics.Event(subject, err)
		return err
	})
}

func (e sideEffects) submit(name string, fn worker.TaskFunc) {
	if !e.dispatcher.Submit(name, fn) {
		e.logger.Warn("side effect dropped", "task", name)
	}
}
