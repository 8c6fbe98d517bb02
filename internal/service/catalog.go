package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dukerupert/vitrina/internal/cache"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/telemetry"
	"github.com/shopspring/decimal"
)

const (
	bannerCount         = 3
	featuredListSize    = 12
	defaultReviewerMail = "no-reply@mail.ru"
)

// CatalogService provides read access to categories and products.
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Banners(ctx context.Context) ([]domain.Banner, error)
	Tags(ctx context.Context, categoryID *int64) ([]domain.Tag, error)
	ListProducts(ctx context.Context, q domain.CatalogQuery) (*domain.ProductPage, error)
	Popular(ctx context.Context) ([]domain.ProductShort, error)
	Limited(ctx context.Context) ([]domain.ProductShort, error)
	Product(ctx context.Context, ref string) (*domain.ProductDetail, error)
	Filters(ctx context.Context, categoryID *int64) (*domain.FilterOptions, error)
}

type catalogService struct {
	repo    repository.Querier
	cache   cache.Cache
	ttl     time.Duration
	metrics *telemetry.BusinessMetrics
}

// NewCatalogService creates a CatalogService. A nil cache disables caching.
func NewCatalogService(repo repository.Querier, c cache.Cache, ttl time.Duration, metrics *telemetry.BusinessMetrics) CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &catalogService{repo: repo, cache: c, ttl: ttl, metrics: metrics}
}

// Categories returns active root categories, each with its active
// subcategories.
func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return cache.Remember(ctx, s.cache, cache.KeyCategories, s.ttl, func(ctx context.Context) ([]domain.Category, error) {
		rows, err := s.repo.ListActiveCategories(ctx)
		if err != nil {
			return nil, domain.Internal(err, "catalog.categories", "failed to list categories")
		}
		return buildCategoryTree(rows), nil
	})
}

func buildCategoryTree(rows []repository.Category) []domain.Category {
	children := map[int64][]domain.Category{}
	for _, row := range rows {
		if row.ParentID.Valid {
			children[row.ParentID.Int64] = append(children[row.ParentID.Int64], toDomainCategory(row))
		}
	}

	roots := make([]domain.Category, 0)
	for _, row := range rows {
		if row.ParentID.Valid {
			continue
		}
		c := toDomainCategory(row)
		if subs, ok := children[row.ID]; ok {
			c.Subcategories = subs
		}
		roots = append(roots, c)
	}
	return roots
}

func toDomainCategory(row repository.Category) domain.Category {
	c := domain.Category{
		ID:            row.ID,
		Name:          row.Name,
		Slug:          row.Slug,
		Image:         domain.Image{Src: row.IconUrl.String, Alt: row.Name},
		Subcategories: []domain.Category{},
	}
	if row.ParentID.Valid {
		parent := row.ParentID.Int64
		c.Parent = &parent
	}
	return c
}

func (s *catalogService) Banners(ctx context.Context) ([]domain.Banner, error) {
	return cache.Remember(ctx, s.cache, cache.KeyBanners, s.ttl, func(ctx context.Context) ([]domain.Banner, error) {
		rows, err := s.repo.ListBannerCategories(ctx, bannerCount)
		if err != nil {
			return nil, domain.Internal(err, "catalog.banners", "failed to list banners")
		}

		banners := make([]domain.Banner, 0, len(rows))
		for _, row := range rows {
			images := []domain.Image{}
			if row.IconUrl.Valid {
				images = append(images, domain.Image{Src: row.IconUrl.String, Alt: row.Name})
			}
			banners = append(banners, domain.Banner{
				Title:        row.Name,
				Images:       images,
				Link:         "/catalog?category=" + strconv.FormatInt(row.ID, 10),
				Category:     row.ID,
				CategorySlug: row.Slug,
			})
		}
		return banners, nil
	})
}

func (s *catalogService) Tags(ctx context.Context, categoryID *int64) ([]domain.Tag, error) {
	key := cache.KeyTagsPrefix + categoryKey(categoryID)
	return cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]domain.Tag, error) {
		rows, err := s.repo.ListTags(ctx, repository.Int8(categoryID))
		if err != nil {
			return nil, domain.Internal(err, "catalog.tags", "failed to list tags")
		}
		tags := make([]domain.Tag, 0, len(rows))
		for _, row := range rows {
			tags = append(tags, domain.Tag{ID: row.ID, Name: row.Name})
		}
		return tags, nil
	})
}

// ListProducts returns one page of active products matching q.
func (s *catalogService) ListProducts(ctx context.Context, q domain.CatalogQuery) (*domain.ProductPage, error) {
	const op = "catalog.list"

	if q.Limit <= 0 {
		q.Limit = domain.DefaultPageSize
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if !q.Sort.Valid() {
		q.Sort = domain.SortNovelty
	}

	filter := repository.CountProductsParams{
		CategoryID:   repository.Int8(q.CategoryID),
		Name:         q.Name,
		MinPrice:     nullDecimal(q.MinPrice),
		MaxPrice:     nullDecimal(q.MaxPrice),
		FreeDelivery: q.FreeDelivery,
		Available:    q.Available,
	}

	total, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count products")
	}

	rows, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
		CategoryID:   filter.CategoryID,
		Name:         filter.Name,
		MinPrice:     filter.MinPrice,
		MaxPrice:     filter.MaxPrice,
		FreeDelivery: filter.FreeDelivery,
		Available:    filter.Available,
		Sort:         string(q.Sort),
		Limit:        int32(q.Limit),
		Offset:       int32(q.Offset()),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}

	items, err := s.shortProducts(ctx, rows)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product media")
	}

	s.metrics.ProductSearch(q.CategoryID != nil || q.Name != "" || q.MinPrice != nil || q.MaxPrice != nil || q.FreeDelivery || q.Available)

	return &domain.ProductPage{
		Items:       items,
		CurrentPage: q.Page,
		LastPage:    domain.LastPage(total, q.Limit),
		Total:       total,
	}, nil
}

func (s *catalogService) Popular(ctx context.Context) ([]domain.ProductShort, error) {
	return cache.Remember(ctx, s.cache, cache.KeyPopular, s.ttl, func(ctx context.Context) ([]domain.ProductShort, error) {
		rows, err := s.repo.ListPopularProducts(ctx, featuredListSize)
		if err != nil {
			return nil, domain.Internal(err, "catalog.popular", "failed to list popular products")
		}
		return s.shortProducts(ctx, rows)
	})
}

func (s *catalogService) Limited(ctx context.Context) ([]domain.ProductShort, error) {
	return cache.Remember(ctx, s.cache, cache.KeyLimited, s.ttl, func(ctx context.Context) ([]domain.ProductShort, error) {
		rows, err := s.repo.ListLimitedProducts(ctx, featuredListSize)
		if err != nil {
			return nil, domain.Internal(err, "catalog.limited", "failed to list limited products")
		}
		return s.shortProducts(ctx, rows)
	})
}

// shortProducts attaches images and tags to listing rows in two batched
// queries.
func (s *catalogService) shortProducts(ctx context.Context, rows []repository.ProductListRow) ([]domain.ProductShort, error) {
	items := make([]domain.ProductShort, 0, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	images, err := s.repo.ListProductImages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}
	tags, err := s.repo.ListProductTags(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list product tags: %w", err)
	}

	imagesByProduct := map[int64][]domain.Image{}
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], domain.Image{Src: img.Url, Alt: img.Alt})
	}
	tagsByProduct := map[int64][]domain.Tag{}
	for _, t := range tags {
		tagsByProduct[t.ProductID] = append(tagsByProduct[t.ProductID], domain.Tag{ID: t.ID, Name: t.Name})
	}

	for _, row := range rows {
		item := domain.ProductShort{
			ID:           row.ID,
			Category:     row.CategoryID,
			Price:        row.Price,
			Count:        row.QuantityAvailable,
			Date:         row.CreatedAt,
			Title:        row.Title,
			Slug:         row.Slug,
			Description:  row.ShortDescription,
			FreeDelivery: row.FreeDelivery,
			Images:       imagesByProduct[row.ID],
			Tags:         tagsByProduct[row.ID],
			Reviews:      row.ReviewCount,
			Rating:       roundRating(row.Rating),
		}
		if item.Images == nil {
			item.Images = []domain.Image{}
		}
		if item.Tags == nil {
			item.Tags = []domain.Tag{}
		}
		items = append(items, item)
	}
	return items, nil
}

// Product returns full product detail. A numeric ref is an id, anything
// else a slug. Inactive products are not found.
func (s *catalogService) Product(ctx context.Context, ref string) (*domain.ProductDetail, error) {
	const op = "catalog.product"

	var (
		p   repository.Product
		err error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		p, err = s.repo.GetProductByID(ctx, id)
	} else {
		p, err = s.repo.GetProductBySlug(ctx, ref)
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if !p.IsActive {
		return nil, ErrProductNotFound
	}

	detail := &domain.ProductDetail{
		ID:              p.ID,
		Category:        p.CategoryID,
		Price:           p.Price,
		Count:           p.QuantityAvailable,
		Date:            p.CreatedAt,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		FreeDelivery:    p.FreeDelivery,
		Limited:         p.IsLimited,
		Images:          []domain.Image{},
		Tags:            []domain.Tag{},
		Specifications:  []domain.Specification{},
		Reviews:         []domain.Review{},
	}

	if p.BrandID.Valid {
		brand, err := s.repo.GetBrand(ctx, p.BrandID.Int64)
		if err != nil && !repository.IsNotFound(err) {
			return nil, domain.Internal(err, op, "failed to load brand")
		}
		if err == nil {
			detail.Brand = &domain.Brand{ID: brand.ID, Name: brand.Name}
		}
	}

	images, err := s.repo.ListProductImages(ctx, []int64{p.ID})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load images")
	}
	for _, img := range images {
		detail.Images = append(detail.Images, domain.Image{Src: img.Url, Alt: img.Alt})
	}

	tags, err := s.repo.ListProductTags(ctx, []int64{p.ID})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load tags")
	}
	for _, t := range tags {
		detail.Tags = append(detail.Tags, domain.Tag{ID: t.ID, Name: t.Name})
	}

	specs, err := s.repo.ListProductSpecifications(ctx, p.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load specifications")
	}
	for _, spec := range specs {
		detail.Specifications = append(detail.Specifications, domain.Specification{Name: spec.Name, Value: spec.Value})
	}

	reviews, err := s.repo.ListProductReviews(ctx, p.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load reviews")
	}
	detail.Reviews = toDomainReviews(reviews)

	stats, err := s.repo.GetProductReviewStats(ctx, p.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load rating")
	}
	detail.Rating = roundRating(stats.Rating)

	return detail, nil
}

// Filters returns the brand facets and price bounds for the listing
// sidebar.
func (s *catalogService) Filters(ctx context.Context, categoryID *int64) (*domain.FilterOptions, error) {
	key := cache.KeyFiltersPrefix + categoryKey(categoryID)
	return cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.FilterOptions, error) {
		const op = "catalog.filters"
		arg := repository.Int8(categoryID)

		facets, err := s.repo.ListBrandFacets(ctx, arg)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to list brands")
		}
		bounds, err := s.repo.GetPriceBounds(ctx, arg)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to load price bounds")
		}

		opts := &domain.FilterOptions{
			Brands:   make([]domain.BrandFacet, 0, len(facets)),
			MinPrice: decimal.Zero,
			MaxPrice: decimal.Zero,
		}
		for _, f := range facets {
			opts.Brands = append(opts.Brands, domain.BrandFacet{ID: f.ID, Name: f.Name, Count: f.ProductCount})
		}
		if bounds.MinPrice.Valid {
			opts.MinPrice = bounds.MinPrice.Decimal
		}
		if bounds.MaxPrice.Valid {
			opts.MaxPrice = bounds.MaxPrice.Decimal
		}
		return opts, nil
	})
}

func toDomainReviews(rows []repository.ListProductReviewsRow) []domain.Review {
	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		author := row.FullName
		if author == "" {
			author = row.Username
		}
		email := defaultReviewerMail
		if row.Email.Valid && row.Email.String != "" {
			email = row.Email.String
		}
		reviews = append(reviews, domain.Review{
			Author: author,
			Email:  email,
			Text:   row.Text,
			Rate:   row.Rating,
			Date:   row.CreatedAt,
		})
	}
	return reviews
}

func categoryKey(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// roundRating keeps one decimal place.
func roundRating(r float64) float64 {
	return float64(int64(r*10+0.5)) / 10
}
