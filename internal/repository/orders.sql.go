package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, user_id, session_key, full_name, phone, email, address, comment,
       total_amount, status, created_at, updated_at`

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (user_id, session_key, full_name, phone, email, address, comment, total_amount, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'new')
RETURNING ` + orderColumns

type CreateOrderParams struct {
	UserID      pgtype.Int8     `json:"user_id"`
	SessionKey  pgtype.Text     `json:"session_key"`
	FullName    string          `json:"full_name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Comment     string          `json:"comment"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.UserID,
		arg.SessionKey,
		arg.FullName,
		arg.Phone,
		arg.Email,
		arg.Address,
		arg.Comment,
		arg.TotalAmount,
	)
	return scanOrder(row)
}

const createOrderItem = `-- name: CreateOrderItem :one
INSERT INTO order_items (order_id, product_id, quantity, price_at_order)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, product_id, quantity, price_at_order
`

type CreateOrderItemParams struct {
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int32           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.ProductID,
		arg.Quantity,
		arg.PriceAtOrder,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.ProductID,
		&i.Quantity,
		&i.PriceAtOrder,
	)
	return i, err
}

const getOrder = `-- name: GetOrder :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id int64) (Order, error) {
	row := q.db.QueryRow(ctx, getOrder, id)
	return scanOrder(row)
}

const getOrderForOwner = `-- name: GetOrderForOwner :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND (user_id = $2 OR session_key = $3)
`

type GetOrderForOwnerParams struct {
	ID         int64       `json:"id"`
	UserID     pgtype.Int8 `json:"user_id"`
	SessionKey pgtype.Text `json:"session_key"`
}

func (q *Queries) GetOrderForOwner(ctx context.Context, arg GetOrderForOwnerParams) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderForOwner, arg.ID, arg.UserID, arg.SessionKey)
	return scanOrder(row)
}

const listOrdersForOwner = `-- name: ListOrdersForOwner :many
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 OR session_key = $2
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListOrdersForOwner(ctx context.Context, arg OwnerParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersForOwner, arg.UserID, arg.SessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		i, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrderItems = `-- name: ListOrderItems :many
SELECT oi.order_id, oi.product_id, oi.quantity, oi.price_at_order, p.title, p.slug
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ANY($1::bigint[])
ORDER BY oi.order_id, oi.id
`

type ListOrderItemsRow struct {
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int32           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
}

func (q *Queries) ListOrderItems(ctx context.Context, orderIds []int64) ([]ListOrderItemsRow, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListOrderItemsRow{}
	for rows.Next() {
		var i ListOrderItemsRow
		if err := rows.Scan(
			&i.OrderID,
			&i.ProductID,
			&i.Quantity,
			&i.PriceAtOrder,
			&i.Title,
			&i.Slug,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const transitionOrderStatus = `-- name: TransitionOrderStatus :one
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1 AND status = ANY($3::text[])
RETURNING ` + orderColumns

type TransitionOrderStatusParams struct {
	ID         int64    `json:"id"`
	Status     string   `json:"status"`
	FromStatus []string `json:"from_status"`
}

// TransitionOrderStatus returns pgx.ErrNoRows when the order is missing or
// its current status is not in FromStatus.
func (q *Queries) TransitionOrderStatus(ctx context.Context, arg TransitionOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, transitionOrderStatus, arg.ID, arg.Status, arg.FromStatus)
	return scanOrder(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionKey,
		&i.FullName,
		&i.Phone,
		&i.Email,
		&i.Address,
		&i.Comment,
		&i.TotalAmount,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
