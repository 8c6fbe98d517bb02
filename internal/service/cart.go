package service

import (
	"context"
	"math"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/telemetry"
)

// CartService provides business logic for owner-scoped shopping carts.
// Every operation that changes the cart returns the cart as it stands
// afterwards.
type CartService interface {
	Get(ctx context.Context, owner domain.Owner) (*domain.Cart, error)
	Add(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error)
	Decrement(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error)
	Update(ctx context.Context, owner domain.Owner, lineID int64, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, owner domain.Owner, lineID int64) (*domain.Cart, error)
	Clear(ctx context.Context, owner domain.Owner) error
}

type cartService struct {
	store   repository.Store
	metrics *telemetry.BusinessMetrics
}

// NewCartService creates a new CartService instance
func NewCartService(store repository.Store, metrics *telemetry.BusinessMetrics) CartService {
	return &cartService{store: store, metrics: metrics}
}

func (s *cartService) Get(ctx context.Context, owner domain.Owner) (*domain.Cart, error) {
	if owner.IsZero() {
		return nil, domain.Internal(nil, "cart.get", "cart owner missing")
	}

	rows, err := s.store.ListCartLines(ctx, repository.OwnerArgs(owner))
	if err != nil {
		return nil, domain.Internal(err, "cart.get", "failed to load cart")
	}

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		line := domain.CartLine{
			ID:         row.ID,
			ProductID:  row.ProductID,
			Title:      row.Title,
			Slug:       row.Slug,
			Price:      row.Price,
			PriceAtAdd: row.PriceAtAdd,
			Quantity:   row.Quantity,
		}
		if row.ImageUrl.Valid {
			line.Image = &domain.Image{Src: row.ImageUrl.String, Alt: row.ImageAlt.String}
		}
		lines = append(lines, line)
	}
	return domain.NewCart(lines), nil
}

// Add puts quantity units of a product in the cart. Repeat adds of the same
// product increase the existing line; the first add fixes the price snapshot.
func (s *cartService) Add(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
	const op = "cart.add"

	if err := checkQuantity(op, quantity); err != nil {
		return nil, err
	}
	if productID <= 0 {
		return nil, domain.NewValidationError(op, "id", "must be a positive integer")
	}

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}

	if userID, ok := owner.UserID(); ok {
		_, err = s.store.AddUserCartLine(ctx, repository.AddUserCartLineParams{
			UserID:     userID,
			ProductID:  productID,
			Quantity:   int32(quantity),
			PriceAtAdd: product.Price,
		})
	} else if key, ok := owner.SessionKey(); ok {
		_, err = s.store.AddGuestCartLine(ctx, repository.AddGuestCartLineParams{
			SessionKey: key,
			ProductID:  productID,
			Quantity:   int32(quantity),
			PriceAtAdd: product.Price,
		})
	} else {
		return nil, domain.Internal(nil, op, "cart owner missing")
	}
	if err != nil {
		if repository.IsOutOfRange(err) {
			return nil, domain.NewValidationError(op, "count", "is too large")
		}
		return nil, domain.Internal(err, op, "failed to add to cart")
	}

	s.metrics.CartAdd(ownerLabel(owner), quantity)
	return s.Get(ctx, owner)
}

// Decrement removes quantity units of a product, deleting the line once it
// reaches zero. A missing or non-positive quantity removes one unit.
func (s *cartService) Decrement(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
	const op = "cart.decrement"

	if quantity < 1 {
		quantity = 1
	}
	if err := checkQuantity(op, quantity); err != nil {
		return nil, err
	}

	args := repository.OwnerArgs(owner)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		line, err := q.GetCartLineByProductForUpdate(ctx, repository.GetCartLineByProductParams{
			ProductID:  productID,
			UserID:     args.UserID,
			SessionKey: args.SessionKey,
		})
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCartLineNotFound
			}
			return domain.Internal(err, op, "failed to load cart line")
		}

		remaining := int(line.Quantity) - quantity
		if remaining <= 0 {
			if _, err := q.DeleteCartLine(ctx, repository.DeleteCartLineParams{
				ID:         line.ID,
				UserID:     args.UserID,
				SessionKey: args.SessionKey,
			}); err != nil {
				return domain.Internal(err, op, "failed to remove cart line")
			}
			return nil
		}

		if _, err := q.UpdateCartLineQuantity(ctx, repository.UpdateCartLineQuantityParams{
			ID:       line.ID,
			Quantity: int32(remaining),
		}); err != nil {
			return domain.Internal(err, op, "failed to update cart line")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, owner)
}

// Update sets a line's quantity. Zero or less removes the line.
func (s *cartService) Update(ctx context.Context, owner domain.Owner, lineID int64, quantity int) (*domain.Cart, error) {
	const op = "cart.update"

	if quantity <= 0 {
		return s.Remove(ctx, owner, lineID)
	}
	if quantity > math.MaxInt32 {
		return nil, domain.NewValidationError(op, "count", "is too large")
	}

	args := repository.OwnerArgs(owner)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		line, err := q.GetCartLine(ctx, repository.GetCartLineParams{
			ID:         lineID,
			UserID:     args.UserID,
			SessionKey: args.SessionKey,
		})
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCartLineNotFound
			}
			return domain.Internal(err, op, "failed to load cart line")
		}

		if _, err := q.UpdateCartLineQuantity(ctx, repository.UpdateCartLineQuantityParams{
			ID:       line.ID,
			Quantity: int32(quantity),
		}); err != nil {
			return domain.Internal(err, op, "failed to update cart line")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, owner)
}

func (s *cartService) Remove(ctx context.Context, owner domain.Owner, lineID int64) (*domain.Cart, error) {
	args := repository.OwnerArgs(owner)
	n, err := s.store.DeleteCartLine(ctx, repository.DeleteCartLineParams{
		ID:         lineID,
		UserID:     args.UserID,
		SessionKey: args.SessionKey,
	})
	if err != nil {
		return nil, domain.Internal(err, "cart.remove", "failed to remove cart line")
	}
	if n == 0 {
		return nil, ErrCartLineNotFound
	}

	return s.Get(ctx, owner)
}

// Clear empties the cart. Clearing an empty cart is not an error.
func (s *cartService) Clear(ctx context.Context, owner domain.Owner) error {
	if _, err := s.store.ClearCart(ctx, repository.OwnerArgs(owner)); err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart")
	}
	s.metrics.CartClear()
	return nil
}

func checkQuantity(op string, quantity int) error {
	if quantity < 1 {
		return domain.NewValidationError(op, "count", "must be at least 1")
	}
	if quantity > math.MaxInt32 {
		return domain.NewValidationError(op, "count", "is too large")
	}
	return nil
}

func ownerLabel(owner domain.Owner) string {
	if owner.IsUser() {
		return "user"
	}
	return "guest"
}
