// Package events publishes order lifecycle notifications for downstream
// consumers (fulfilment, analytics). Publishing is fire-and-forget.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Subjects.
const (
	SubjectOrderCreated       = "orders.created"
	SubjectOrderStatusChanged = "orders.status_changed"
)

// OrderCreated is published after a checkout commits.
type OrderCreated struct {
	OrderID    int64           `json:"orderId"`
	Owner      string          `json:"owner"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int64           `json:"itemCount"`
	Email      string          `json:"email"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// OrderStatusChanged is published after a status transition commits.
type OrderStatusChanged struct {
	OrderID    int64     `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher sends an event to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
}

// Noop discards events. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
