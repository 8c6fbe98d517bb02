package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// OwnerParams selects rows owned by a user or by a guest session.
// Exactly one field is valid; the NULL side never matches.
type OwnerParams struct {
	UserID     pgtype.Int8 `json:"user_id"`
	SessionKey pgtype.Text `json:"session_key"`
}

const listCartLines = `-- name: ListCartLines :many
SELECT cl.id, cl.product_id, cl.quantity, cl.price_at_add,
       p.title, p.slug, p.price,
       img.url AS image_url, img.alt AS image_alt
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
LEFT JOIN LATERAL (
    SELECT url, alt FROM product_images pi
    WHERE pi.product_id = p.id
    ORDER BY pi.sort_order, pi.id
    LIMIT 1
) img ON TRUE
WHERE cl.user_id = $1 OR cl.session_key = $2
ORDER BY cl.id
`

type ListCartLinesRow struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	Title      string          `json:"title"`
	Slug       string          `json:"slug"`
	Price      decimal.Decimal `json:"price"`
	ImageUrl   pgtype.Text     `json:"image_url"`
	ImageAlt   pgtype.Text     `json:"image_alt"`
}

func (q *Queries) ListCartLines(ctx context.Context, arg OwnerParams) ([]ListCartLinesRow, error) {
	rows, err := q.db.Query(ctx, listCartLines, arg.UserID, arg.SessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListCartLinesRow{}
	for rows.Next() {
		var i ListCartLinesRow
		if err := rows.Scan(
			&i.ID,
			&i.ProductID,
			&i.Quantity,
			&i.PriceAtAdd,
			&i.Title,
			&i.Slug,
			&i.Price,
			&i.ImageUrl,
			&i.ImageAlt,
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

const lockCartLines = `-- name: LockCartLines :many
SELECT id, user_id, session_key, product_id, quantity, price_at_add, created_at
FROM cart_lines
WHERE user_id = $1 OR session_key = $2
ORDER BY id
FOR UPDATE
`

// LockCartLines must run inside a transaction. A concurrent checkout for the
// same owner blocks here until the first one commits.
func (q *Queries) LockCartLines(ctx context.Context, arg OwnerParams) ([]CartLine, error) {
	rows, err := q.db.Query(ctx, lockCartLines, arg.UserID, arg.SessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartLine{}
	for rows.Next() {
		var i CartLine
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.SessionKey,
			&i.ProductID,
			&i.Quantity,
			&i.PriceAtAdd,
			&i.CreatedAt,
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

const addUserCartLine = `-- name: AddUserCartLine :one
INSERT INTO cart_lines (user_id, product_id, quantity, price_at_add)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id) WHERE user_id IS NOT NULL
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
RETURNING id, user_id, session_key, product_id, quantity, price_at_add, created_at
`

type AddUserCartLineParams struct {
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
}

func (q *Queries) AddUserCartLine(ctx context.Context, arg AddUserCartLineParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, addUserCartLine,
		arg.UserID,
		arg.ProductID,
		arg.Quantity,
		arg.PriceAtAdd,
	)
	var i CartLine
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionKey,
		&i.ProductID,
		&i.Quantity,
		&i.PriceAtAdd,
		&i.CreatedAt,
	)
	return i, err
}

const addGuestCartLine = `-- name: AddGuestCartLine :one
INSERT INTO cart_lines (session_key, product_id, quantity, price_at_add)
VALUES ($1, $2, $3, $4)
ON CONFLICT (session_key, product_id) WHERE session_key IS NOT NULL
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
RETURNING id, user_id, session_key, product_id, quantity, price_at_add, created_at
`

type AddGuestCartLineParams struct {
	SessionKey string          `json:"session_key"`
	ProductID  int64           `json:"product_id"`
	Quantity   int32           `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
}

func (q *Queries) AddGuestCartLine(ctx context.Context, arg AddGuestCartLineParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, addGuestCartLine,
		arg.SessionKey,
		arg.ProductID,
		arg.Quantity,
		arg.PriceAtAdd,
	)
	var i CartLine
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionKey,
		&i.ProductID,
		&i.Quantity,
		&i.PriceAtAdd,
		&i.CreatedAt,
	)
	return i, err
}

const getCartLine = `-- name: GetCartLine :one
SELECT id, user_id, session_key, product_id, quantity, price_at_add, created_at
FROM cart_lines
WHERE id = $1 AND (user_id = $2 OR session_key = $3)
`

type GetCartLineParams struct {
	ID         int64       `json:"id"`
	UserID     pgtype.Int8 `json:"user_id"`
	SessionKey pgtype.Text `json:"session_key"`
}

func (q *Queries) GetCartLine(ctx context.Context, arg GetCartLineParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, getCartLine, arg.ID, arg.UserID, arg.SessionKey)
	var i CartLine
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionKey,
		&i.ProductID,
		&i.Quantity,
		&i.PriceAtAdd,
		&i.CreatedAt,
	)
	return i, err
}

const getCartLineByProductForUpdate = `-- name: GetCartLineByProductForUpdate :one
SELECT id, user_id, session_key, product_id, quantity, price_at_add, created_at
FROM cart_lines
WHERE product_id = $1 AND (user_id = $2 OR session_key = $3)
FOR UPDATE
`

type GetCartLineByProductParams struct {
	ProductID  int64       `json:"product_id"`
	UserID     pgtype.Int8 `json:"user_id"`
	SessionKey pgtype.Text `json:"session_key"`
}

func (q *Queries) GetCartLineByProductForUpdate(ctx context.Context, arg GetCartLineByProductParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, getCartLineByProductForUpdate, arg.ProductID, arg.UserID, arg.SessionKey)
	var i CartLine
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionKey,
		&i.ProductID,
		&i.Quantity,
		&i.PriceAtAdd,
		&i.CreatedAt,
	)
	return i, err
}

const updateCartLineQuantity = `-- name: UpdateCartLineQuantity :one
UPDATE cart_lines SET quantity = $2
WHERE id = $1
RETURNING id, user_id, session_key, product_id, quantity, price_at_add, created_at
`

type UpdateCartLineQuantityParams struct {
	ID       int64 `json:"id"`
	Quantity int32 `json:"quantity"`
}

func (q *Queries) UpdateCartLineQuantity(ctx context.Context, arg UpdateCartLineQuantityParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, updateCartLineQuantity, arg.ID, arg.Quantity)
	var i CartLine
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SessionKey,
		&i.ProductID,
		&i.Quantity,
		&i.PriceAtAdd,
		&i.CreatedAt,
	)
	return i, err
}

const deleteCartLine = `-- name: DeleteCartLine :execrows
DELETE FROM cart_lines
WHERE id = $1 AND (user_id = $2 OR session_key = $3)
`

type DeleteCartLineParams struct {
	ID         int64       `json:"id"`
	UserID     pgtype.Int8 `json:"user_id"`
	SessionKey pgtype.Text `json:"session_key"`
}

func (q *Queries) DeleteCartLine(ctx context.Context, arg DeleteCartLineParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartLine, arg.ID, arg.UserID, arg.SessionKey)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteCartLinesByIDs = `-- name: DeleteCartLinesByIDs :execrows
DELETE FROM cart_lines WHERE id = ANY($1::bigint[])
`

func (q *Queries) DeleteCartLinesByIDs(ctx context.Context, ids []int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartLinesByIDs, ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const clearCart = `-- name: ClearCart :execrows
DELETE FROM cart_lines WHERE user_id = $1 OR session_key = $2
`

func (q *Queries) ClearCart(ctx context.Context, arg OwnerParams) (int64, error) {
	result, err := q.db.Exec(ctx, clearCart, arg.UserID, arg.SessionKey)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const mergeGuestCart = `-- name: MergeGuestCart :execrows
INSERT INTO cart_lines (user_id, product_id, quantity, price_at_add)
SELECT $1::bigint, product_id, quantity, price_at_add
FROM cart_lines
WHERE session_key = $2
ON CONFLICT (user_id, product_id) WHERE user_id IS NOT NULL
DO UPDATE SET quantity = LEAST(cart_lines.quantity::bigint + EXCLUDED.quantity, 2147483647)::integer
`

type MergeGuestCartParams struct {
	UserID     int64  `json:"user_id"`
	SessionKey string `json:"session_key"`
}

// MergeGuestCart copies guest lines into the user's cart. Quantities add up
// on overlap, capped at the INTEGER maximum, and the user's existing price
// snapshot is kept. The guest lines
// are left in place for the caller to clear in the same transaction.
func (q *Queries) MergeGuestCart(ctx context.Context, arg MergeGuestCartParams) (int64, error) {
	result, err := q.db.Exec(ctx, mergeGuestCart, arg.UserID, arg.SessionKey)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
