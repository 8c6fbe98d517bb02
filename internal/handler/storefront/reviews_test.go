package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestReviewHandler_List(t *testing.T) {
	reviews := &mockReviewService{
		listFunc: func(ctx context.Context, productID int64) ([]domain.Review, error) {
			assert.Equal(t, int64(8), productID)
			return []domain.Review{{Author: "Ann", Email: "no-reply@mail.ru", Text: "Good", Rate: 5}}, nil
		},
	}
	h := NewReviewHandler(reviews)

	rec := serve("GET /api/products/{id}/reviews", h.List, jsonRequest(http.MethodGet, "/api/products/8/reviews", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Review
	decodeBody(t, rec, &got)
	assert.Len(t, got, 1)
}

func TestReviewHandler_Create(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "created", status: http.StatusCreated},
		{name: "duplicate", err: service.ErrReviewExists, status: http.StatusConflict},
		{name: "missing product", err: service.ErrProductNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := &mockReviewService{
				createFunc: func(ctx context.Context, userID, productID int64, in service.ReviewInput) (*domain.Review, error) {
					assert.Equal(t, int64(2), userID)
					assert.Equal(t, 4, in.Rate)
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.Review{Author: "alice", Text: in.Text, Rate: int16(in.Rate)}, nil
				},
			}
			h := NewReviewHandler(reviews)

			req := asUser(jsonRequest(http.MethodPost, "/api/products/8/reviews", `{"text":"Nice","rate":4}`), 2)
			rec := serve("POST /api/products/{id}/reviews", h.Create, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestReviewHandler_CreateAnonymous(t *testing.T) {
	h := NewReviewHandler(&mockReviewService{})

	rec := serve("POST /api/products/{id}/reviews", h.Create, jsonRequest(http.MethodPost, "/api/products/8/reviews", `{"text":"Nice","rate":4}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
