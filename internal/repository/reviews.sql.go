package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const createReview = `-- name: CreateReview :one
INSERT INTO reviews (product_id, user_id, text, rating)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, user_id, text, rating, created_at
`

type CreateReviewParams struct {
	ProductID int64  `json:"product_id"`
	UserID    int64  `json:"user_id"`
	Text      string `json:"text"`
	Rating    int16  `json:"rating"`
}

func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error) {
	row := q.db.QueryRow(ctx, createReview, arg.ProductID, arg.UserID, arg.Text, arg.Rating)
	var i Review
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.UserID,
		&i.Text,
		&i.Rating,
		&i.CreatedAt,
	)
	return i, err
}

const listProductReviews = `-- name: ListProductReviews :many
SELECT r.id, u.username, COALESCE(pr.full_name, '') AS full_name, pr.email,
       r.text, r.rating, r.created_at
FROM reviews r
JOIN users u ON u.id = r.user_id
LEFT JOIN profiles pr ON pr.user_id = r.user_id
WHERE r.product_id = $1
ORDER BY r.created_at DESC, r.id DESC
`

type ListProductReviewsRow struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	FullName  string      `json:"full_name"`
	Email     pgtype.Text `json:"email"`
	Text      string      `json:"text"`
	Rating    int16       `json:"rating"`
	CreatedAt time.Time   `json:"created_at"`
}

func (q *Queries) ListProductReviews(ctx context.Context, productID int64) ([]ListProductReviewsRow, error) {
	rows, err := q.db.Query(ctx, listProductReviews, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListProductReviewsRow{}
	for rows.Next() {
		var i ListProductReviewsRow
		if err := rows.Scan(
			&i.ID,
			&i.Username,
			&i.FullName,
			&i.Email,
			&i.Text,
			&i.Rating,
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
