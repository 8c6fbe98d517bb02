// Package jobs defines the background tasks run by the worker.
package jobs

import (
	"context"
	"fmt"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/dukerupert/vitrina/internal/worker"
)

// Task names
const (
	TaskOrderConfirmation = "email:order_confirmation"
	TaskPruneSessions     = "cleanup:sessions"
)

// OrderMailer sends order emails.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order) error
}

// OrderConfirmation returns a task that mails the order summary and records
// the outcome.
func OrderConfirmation(mailer OrderMailer, order *domain.Order, metrics *telemetry.BusinessMetrics) worker.TaskFunc {
	return func(ctx context.Context) error {
		err := mailer.SendOrderConfirmation(ctx, order)
		metrics.Email("order_confirmation", err)
		if err != nil {
			return fmt.Errorf("order %d: %w", order.ID, err)
		}
		return nil
	}
}
