package storefront

import (
	"net/http"

	"github.com/dukerupert/vitrina/internal/handler"
	"github.com/dukerupert/vitrina/internal/service"
)

// BasketHandler serves the owner's cart. Routes must run behind
// middleware.WithOwner.
type BasketHandler struct {
	cart service.CartService
}

func NewBasketHandler(cart service.CartService) *BasketHandler {
	return &BasketHandler{cart: cart}
}

// basketItemRequest is the body of POST and DELETE /api/basket.
type basketItemRequest struct {
	ID    int64 `json:"id"`
	Count int   `json:"count"`
}

type basketCountRequest struct {
	Count int `json:"count"`
}

// Get handles GET /api/basket
func (h *BasketHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.Get(r.Context(), owner)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/basket. Quantities add up on an existing line.
func (h *BasketHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	var req basketItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.cart.Add(r.Context(), owner, req.ID, req.Count)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart)
}

// Decrement handles DELETE /api/basket
func (h *BasketHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	var req basketItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.cart.Decrement(r.Context(), owner, req.ID, req.Count)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart)
}

// UpdateLine handles PATCH /api/basket/items/{lineId}
func (h *BasketHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	lineID, err := pathID(r, "lineId")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req basketCountRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.cart.Update(r.Context(), owner, lineID, req.Count)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart)
}

// RemoveLine handles DELETE /api/basket/items/{lineId}
func (h *BasketHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	lineID, err := pathID(r, "lineId")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.cart.Remove(r.Context(), owner, lineID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/basket/items
func (h *BasketHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(w, r)
	if !ok {
		return
	}

	if err := h.cart.Clear(r.Context(), owner); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
