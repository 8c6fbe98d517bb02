package admin

import (
	"net/http"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/handler"
	"github.com/dukerupert/vitrina/internal/middleware"
	"github.com/dukerupert/vitrina/internal/service"
)

// OrderHandler moves orders through their lifecycle.
type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status. Transitions
// not allowed from the current status answer 409.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req statusRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.Transition(r.Context(), id, req.Status)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("order status changed",
		"order_id", order.ID,
		"status", order.Status,
	)
	handler.WriteJSON(w, http.StatusOK, order)
}
