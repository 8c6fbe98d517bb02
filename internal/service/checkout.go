package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/events"
	"github.com/dukerupert/vitrina/internal/jobs"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/dukerupert/vitrina/internal/worker"
	"github.com/shopspring/decimal"
)

// CheckoutService turns an owner's cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, owner domain.Owner, contact domain.Contact) (*domain.Order, error)
}

type checkoutService struct {
	store   repository.Store
	mailer  jobs.OrderMailer
	effects sideEffects
	metrics *telemetry.BusinessMetrics
}

// NewCheckoutService creates a CheckoutService. mailer may be nil.
func NewCheckoutService(
	store repository.Store,
	mailer jobs.OrderMailer,
	publisher events.Publisher,
	dispatcher worker.Dispatcher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutService{
		store:   store,
		mailer:  mailer,
		effects: newSideEffects(dispatcher, publisher, metrics, logger),
		metrics: metrics,
	}
}

// Checkout snapshots the cart into an order in one transaction: the owner's
// lines are locked, the order and its items are written with the prices
// captured at add time, and exactly the locked lines are deleted. A
// concurrent checkout for the same owner waits on the lock and then sees an
// empty cart.
func (s *checkoutService) Checkout(ctx context.Context, owner domain.Owner, contact domain.Contact) (*domain.Order, error) {
	const op = "order.checkout"

	if owner.IsZero() {
		return nil, domain.Internal(nil, op, "order owner missing")
	}

	contact = normalizeContact(contact)
	if err := validateStruct(op, contact); err != nil {
		s.metrics.CheckoutFailure(domain.EINVALID)
		return nil, err
	}

	args := repository.OwnerArgs(owner)
	var order domain.Order

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		lines, err := q.LockCartLines(ctx, args)
		if err != nil {
			return domain.Internal(err, op, "failed to lock cart")
		}
		if len(lines) == 0 {
			return domain.EmptyCart(op)
		}

		total := decimal.Zero
		lineIDs := make([]int64, 0, len(lines))
		for _, line := range lines {
			total = total.Add(domain.LineAmount(line.Quantity, line.PriceAtAdd))
			lineIDs = append(lineIDs, line.ID)
		}
		if total.GreaterThan(domain.MaxOrderTotal) {
			return ErrOrderTooLarge
		}

		created, err := q.CreateOrder(ctx, repository.CreateOrderParams{
			UserID:      args.UserID,
			SessionKey:  args.SessionKey,
			FullName:    contact.FullName,
			Phone:       contact.Phone,
			Email:       contact.Email,
			Address:     contact.Address,
			Comment:     contact.Comment,
			TotalAmount: total,
		})
		if err != nil {
			if repository.IsOutOfRange(err) {
				return ErrOrderTooLarge
			}
			return domain.Internal(err, op, "failed to create order")
		}

		for _, line := range lines {
			if _, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:      created.ID,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				PriceAtOrder: line.PriceAtAdd,
			}); err != nil {
				return domain.Internal(err, op, "failed to create order item")
			}
			if err := q.IncrementPurchases(ctx, repository.IncrementPurchasesParams{
				ID:       line.ProductID,
				Quantity: line.Quantity,
			}); err != nil {
				return domain.Internal(err, op, "failed to update product popularity")
			}
		}

		deleted, err := q.DeleteCartLinesByIDs(ctx, lineIDs)
		if err != nil {
			return domain.Internal(err, op, "failed to clear cart")
		}
		if deleted != int64(len(lineIDs)) {
			return domain.Errorf(domain.EINTERNAL, op, "cart changed during checkout: deleted %d of %d lines", deleted, len(lineIDs))
		}

		items, err := q.ListOrderItems(ctx, []int64{created.ID})
		if err != nil {
			return domain.Internal(err, op, "failed to load order items")
		}
		order = toDomainOrder(created, items)
		return nil
	})
	if err != nil {
		s.metrics.CheckoutFailure(domain.ErrorCode(err))
		return nil, err
	}

	s.afterCheckout(owner, &order)
	return &order, nil
}

func (s *checkoutService) afterCheckout(owner domain.Owner, order *domain.Order) {
	s.metrics.OrderCreated(ownerLabel(owner), order.TotalCost.InexactFloat64(), len(order.Items))

	s.effects.publish(events.SubjectOrderCreated, events.OrderCreated{
		OrderID:    order.ID,
		Owner:      owner.String(),
		Total:      order.TotalCost,
		ItemCount:  order.ItemCount(),
		Email:      order.Email,
		OccurredAt: time.Now().UTC(),
	})

	if s.mailer != nil && order.Email != "" {
		snapshot := *order
		s.effects.submit(jobs.TaskOrderConfirmation, jobs.OrderConfirmation(s.mailer, &snapshot, s.metrics))
	}
}

func normalizeContact(c domain.Contact) domain.Contact {
	return domain.Contact{
		FullName: strings.TrimSpace(c.FullName),
		Phone:    strings.TrimSpace(c.Phone),
		Email:    strings.TrimSpace(c.Email),
		Address:  strings.TrimSpace(c.Address),
		Comment:  strings.TrimSpace(c.Comment),
	}
}
