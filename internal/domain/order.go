package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// orderTransitions lists, for each target state, the states it may be entered from.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusNew},
	OrderStatusPaid:       {OrderStatusNew, OrderStatusProcessing},
	OrderStatusShipped:    {OrderStatusPaid},
	OrderStatusCompleted:  {OrderStatusShipped},
	OrderStatusCanceled:   {OrderStatusNew, OrderStatusProcessing, OrderStatusPaid, OrderStatusShipped},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusPaid,
		OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// AllowedFrom returns the states an order may be in to move to target.
// Returns nil for "new" and unknown targets.
func AllowedFrom(target OrderStatus) []OrderStatus {
	return orderTransitions[target]
}

// CanTransition reports whether from → to is allowed.
func CanTransition(from, to OrderStatus) bool {
	return slices.Contains(AllowedFrom(to), from)
}

// Contact is the delivery contact captured at checkout.
type Contact struct {
	FullName string `json:"fullName" validate:"required,max=128"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Address  string `json:"address" validate:"required,max=512"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// OrderItem is an immutable copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID    int64           `json:"productId"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Quantity     int32           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder"`
	Amount       decimal.Decimal `json:"amount"`
}

// Order is a placed order. Only Status changes after creation.
type Order struct {
	ID        int64           `json:"id"`
	Status    OrderStatus     `json:"status"`
	FullName  string          `json:"fullName"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Address   string          `json:"address"`
	Comment   string          `json:"comment"`
	TotalCost decimal.Decimal `json:"totalCost"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Items     []OrderItem     `json:"items"`
}

// ItemCount returns the number of units across all items.
func (o *Order) ItemCount() int64 {
	var n int64
	for _, item := range o.Items {
		n += int64(item.Quantity)
	}
	return n
}
