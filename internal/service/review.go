package service

import (
	"context"
	"strings"

	"github.com/dukerupert/vitrina/internal/cache"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/telemetry"
)

// ReviewInput is the body of a new review.
type ReviewInput struct {
	Text string `json:"text" validate:"required,max=2000"`
	Rate int    `json:"rate" validate:"required,min=1,max=5"`
}

// ReviewService lists and creates product reviews.
type ReviewService interface {
	List(ctx context.Context, productID int64) ([]domain.Review, error)
	Create(ctx context.Context, userID, productID int64, in ReviewInput) (*domain.Review, error)
}

type reviewService struct {
	repo    repository.Querier
	cache   cache.Cache
	metrics *telemetry.BusinessMetrics
}

func NewReviewService(repo repository.Querier, c cache.Cache, metrics *telemetry.BusinessMetrics) ReviewService {
	if c == nil {
		c = cache.Noop{}
	}
	return &reviewService{repo: repo, cache: c, metrics: metrics}
}

func (s *reviewService) List(ctx context.Context, productID int64) ([]domain.Review, error) {
	const op = "review.list"

	if err := s.requireProduct(ctx, op, productID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListProductReviews(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list reviews")
	}
	return toDomainReviews(rows), nil
}

// Create posts a review. Each user may review a product once.
func (s *reviewService) Create(ctx context.Context, userID, productID int64, in ReviewInput) (*domain.Review, error) {
	const op = "review.create"

	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}
	if err := s.requireProduct(ctx, op, productID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateReview(ctx, repository.CreateReviewParams{
		ProductID: productID,
		UserID:    userID,
		Text:      in.Text,
		Rating:    int16(in.Rate),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, domain.Internal(err, op, "failed to create review")
	}

	s.metrics.ReviewCreated()
	// Listing ratings go stale for at most one TTL if this fails.
	_ = s.cache.Delete(ctx, cache.KeyPopular, cache.KeyLimited)

	rows, err := s.repo.ListProductReviews(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load review")
	}
	for i, row := range rows {
		if row.ID == created.ID {
			return &toDomainReviews(rows[i : i+1])[0], nil
		}
	}

	return &domain.Review{Text: created.Text, Rate: created.Rating, Date: created.CreatedAt, Email: defaultReviewerMail}, nil
}

func (s *reviewService) requireProduct(ctx context.Context, op string, productID int64) error {
	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrProductNotFound
		}
		return domain.Internal(err, op, "failed to load product")
	}
	if !p.IsActive {
		return ErrProductNotFound
	}
	return nil
}
