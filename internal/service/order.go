package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/events"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/dukerupert/vitrina/internal/worker"
)

// OrderService reads orders and moves them through their status lifecycle.
type OrderService interface {
	List(ctx context.Context, owner domain.Owner) ([]domain.Order, error)
	Get(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error)

	// MarkPaid is the one transition an owner may trigger. Marking an
	// already paid order is a no-op.
	MarkPaid(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error)

	// Transition is the staff-only status change.
	Transition(ctx context.Context, id int64, to domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	store   repository.Store
	effects sideEffects
	metrics *telemetry.BusinessMetrics
}

func NewOrderService(
	store repository.Store,
	publisher events.Publisher,
	dispatcher worker.Dispatcher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) OrderService {
	return &orderService{
		store:   store,
		effects: newSideEffects(dispatcher, publisher, metrics, logger),
		metrics: metrics,
	}
}

// List returns the owner's orders, newest first.
func (s *orderService) List(ctx context.Context, owner domain.Owner) ([]domain.Order, error) {
	const op = "order.list"

	if owner.IsZero() {
		return []domain.Order{}, nil
	}

	rows, err := s.store.ListOrdersForOwner(ctx, repository.OwnerArgs(owner))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	items, err := s.store.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list order items")
	}

	byOrder := map[int64][]repository.ListOrderItemsRow{}
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, toDomainOrder(row, byOrder[row.ID]))
	}
	return orders, nil
}

// Get returns one order. Orders of other owners are reported as not found.
func (s *orderService) Get(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error) {
	const op = "order.get"

	args := repository.OwnerArgs(owner)
	row, err := s.store.GetOrderForOwner(ctx, repository.GetOrderForOwnerParams{
		ID:         id,
		UserID:     args.UserID,
		SessionKey: args.SessionKey,
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}

	return s.withItems(ctx, op, row)
}

func (s *orderService) MarkPaid(ctx context.Context, owner domain.Owner, id int64) (*domain.Order, error) {
	order, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusPaid {
		return order, nil
	}

	return s.transition(ctx, "order.mark_paid", order.ID, order.Status, domain.OrderStatusPaid)
}

func (s *orderService) Transition(ctx context.Context, id int64, to domain.OrderStatus) (*domain.Order, error) {
	const op = "order.transition"

	if !to.Valid() {
		return nil, ErrUnknownStatus
	}

	row, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}

	return s.transition(ctx, op, row.ID, domain.OrderStatus(row.Status), to)
}

// transition applies from→to with a conditional update, so a concurrent
// change between the read and the write surfaces as a conflict.
func (s *orderService) transition(ctx context.Context, op string, id int64, from, to domain.OrderStatus) (*domain.Order, error) {
	if !domain.CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}

	// Only the status just read is accepted, so the update misses when
	// another writer moved the order in between.
	row, err := s.store.TransitionOrderStatus(ctx, repository.TransitionOrderStatusParams{
		ID:         id,
		Status:     string(to),
		FromStatus: []string{string(from)},
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidTransition
		}
		return nil, domain.Internal(err, op, "failed to update order status")
	}

	s.metrics.OrderTransition(string(from), string(to))
	s.effects.publish(events.SubjectOrderStatusChanged, events.OrderStatusChanged{
		OrderID:    id,
		From:       string(from),
		To:         string(to),
		OccurredAt: time.Now().UTC(),
	})

	return s.withItems(ctx, op, row)
}

func (s *orderService) withItems(ctx context.Context, op string, row repository.Order) (*domain.Order, error) {
	items, err := s.store.ListOrderItems(ctx, []int64{row.ID})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order items")
	}
	order := toDomainOrder(row, items)
	return &order, nil
}
