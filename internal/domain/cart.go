package domain

import "github.com/shopspring/decimal"

// CartLine is one product held in an owner's cart. Price is the live catalog
// price for display; PriceAtAdd is the snapshot used for billing.
type CartLine struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"productId"`
	Title      string          `json:"title"`
	Slug       string          `json:"slug"`
	Image      *Image          `json:"image"`
	Price      decimal.Decimal `json:"price"`
	PriceAtAdd decimal.Decimal `json:"priceAtAdd"`
	Quantity   int32           `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// Cart is an owner's full cart with totals computed from the snapshots.
type Cart struct {
	Items         []CartLine      `json:"items"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// MaxOrderTotal is the largest total an order can record.
var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

// LineAmount returns quantity × price snapshot.
func LineAmount(quantity int32, priceAtAdd decimal.Decimal) decimal.Decimal {
	return priceAtAdd.Mul(decimal.NewFromInt32(quantity))
}

// NewCart fills in line amounts and cart totals.
func NewCart(lines []CartLine) *Cart {
	cart := &Cart{Items: make([]CartLine, 0, len(lines)), TotalAmount: decimal.Zero}
	for _, line := range lines {
		line.Amount = LineAmount(line.Quantity, line.PriceAtAdd)
		cart.TotalQuantity += int64(line.Quantity)
		cart.TotalAmount = cart.TotalAmount.Add(line.Amount)
		cart.Items = append(cart.Items, line)
	}
	return cart
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
