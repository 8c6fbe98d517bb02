package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBasketHandler_Add(t *testing.T) {
	guest := domain.GuestOwner("guest-token")
	cart := &mockCartService{
		addFunc: func(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
			assert.Equal(t, guest, owner)
			assert.Equal(t, int64(4), productID)
			assert.Equal(t, 2, quantity)
			return domain.NewCart([]domain.CartLine{{
				ID: 1, ProductID: 4, Quantity: 2,
				PriceAtAdd: decimal.RequireFromString("10.00"),
				Amount:     decimal.RequireFromString("20.00"),
			}}), nil
		},
	}
	h := NewBasketHandler(cart)

	req := asOwner(jsonRequest(http.MethodPost, "/api/basket", `{"id":4,"count":2}`), guest)
	rec := serve("POST /api/basket", h.Add, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Items         []domain.CartLine `json:"items"`
		TotalQuantity int64             `json:"totalQuantity"`
	}
	decodeBody(t, rec, &body)
	assert.Len(t, body.Items, 1)
	assert.Equal(t, int64(2), body.TotalQuantity)
}

func TestBasketHandler_AddErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{
			name:   "unknown field",
			body:   `{"id":4,"quantity":2}`,
			status: http.StatusBadRequest,
			code:   domain.EINVALID,
		},
		{
			name:   "validation",
			body:   `{"id":4,"count":0}`,
			err:    domain.NewValidationError("cart.add", "count", "must be at least 1"),
			status: http.StatusBadRequest,
			code:   domain.EINVALID,
		},
		{
			name:   "missing product",
			body:   `{"id":99,"count":1}`,
			err:    service.ErrProductNotFound,
			status: http.StatusNotFound,
			code:   domain.ENOTFOUND,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &mockCartService{
				addFunc: func(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
					return nil, tt.err
				},
			}
			h := NewBasketHandler(cart)

			req := asOwner(jsonRequest(http.MethodPost, "/api/basket", tt.body), domain.UserOwner(1))
			rec := serve("POST /api/basket", h.Add, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestBasketHandler_Decrement(t *testing.T) {
	var gotProduct int64
	var gotCount int
	cart := &mockCartService{
		decrementFunc: func(ctx context.Context, owner domain.Owner, productID int64, quantity int) (*domain.Cart, error) {
			gotProduct, gotCount = productID, quantity
			return domain.NewCart(nil), nil
		},
	}
	h := NewBasketHandler(cart)

	req := asOwner(jsonRequest(http.MethodDelete, "/api/basket", `{"id":3,"count":1}`), domain.UserOwner(1))
	rec := serve("DELETE /api/basket", h.Decrement, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), gotProduct)
	assert.Equal(t, 1, gotCount)
}

func TestBasketHandler_UpdateLine(t *testing.T) {
	var gotLine int64
	cart := &mockCartService{
		updateFunc: func(ctx context.Context, owner domain.Owner, lineID int64, quantity int) (*domain.Cart, error) {
			gotLine = lineID
			assert.Equal(t, 5, quantity)
			return domain.NewCart(nil), nil
		},
	}
	h := NewBasketHandler(cart)

	req := asOwner(jsonRequest(http.MethodPatch, "/api/basket/items/12", `{"count":5}`), domain.UserOwner(1))
	rec := serve("PATCH /api/basket/items/{lineId}", h.UpdateLine, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), gotLine)
}

func TestBasketHandler_RemoveLine_BadID(t *testing.T) {
	h := NewBasketHandler(&mockCartService{})

	req := asOwner(jsonRequest(http.MethodDelete, "/api/basket/items/abc", ""), domain.UserOwner(1))
	rec := serve("DELETE /api/basket/items/{lineId}", h.RemoveLine, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBasketHandler_Clear(t *testing.T) {
	cleared := false
	cart := &mockCartService{
		clearFunc: func(ctx context.Context, owner domain.Owner) error {
			cleared = true
			return nil
		},
	}
	h := NewBasketHandler(cart)

	req := asOwner(jsonRequest(http.MethodDelete, "/api/basket/items", ""), domain.UserOwner(1))
	rec := serve("DELETE /api/basket/items", h.Clear, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, cleared)
}

func TestBasketHandler_MissingOwner(t *testing.T) {
	h := NewBasketHandler(&mockCartService{})

	rec := serve("GET /api/basket", h.Get, jsonRequest(http.MethodGet, "/api/basket", ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
