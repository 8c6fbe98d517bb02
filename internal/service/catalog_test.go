package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/vitrina/internal/cache"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogRepo implements the catalog queries with function fields.
type mockCatalogRepo struct {
	repository.Querier

	categories      []repository.Category
	listProductsArg repository.ListProductsParams
	countArg        repository.CountProductsParams
	products        []repository.ProductListRow
	total           int64
	product         *repository.Product
	images          []repository.ProductImage
	tags            []repository.ListProductTagsRow
	listCalls       int
	listErr         error
}

func (m *mockCatalogRepo) ListActiveCategories(ctx context.Context) ([]repository.Category, error) {
	m.listCalls++
	return m.categories, m.listErr
}

func (m *mockCatalogRepo) CountProducts(ctx context.Context, arg repository.CountProductsParams) (int64, error) {
	m.countArg = arg
	return m.total, nil
}

func (m *mockCatalogRepo) ListProducts(ctx context.Context, arg repository.ListProductsParams) ([]repository.ProductListRow, error) {
	m.listProductsArg = arg
	return m.products, m.listErr
}

func (m *mockCatalogRepo) ListProductImages(ctx context.Context, ids []int64) ([]repository.ProductImage, error) {
	return m.images, nil
}

func (m *mockCatalogRepo) ListProductTags(ctx context.Context, ids []int64) ([]repository.ListProductTagsRow, error) {
	return m.tags, nil
}

func (m *mockCatalogRepo) GetProductByID(ctx context.Context, id int64) (repository.Product, error) {
	if m.product == nil || m.product.ID != id {
		return repository.Product{}, pgx.ErrNoRows
	}
	return *m.product, nil
}

func (m *mockCatalogRepo) GetProductBySlug(ctx context.Context, slug string) (repository.Product, error) {
	if m.product == nil || m.product.Slug != slug {
		return repository.Product{}, pgx.ErrNoRows
	}
	return *m.product, nil
}

func (m *mockCatalogRepo) GetBrand(ctx context.Context, id int64) (repository.Brand, error) {
	return repository.Brand{ID: id, Name: "Acme"}, nil
}

func (m *mockCatalogRepo) ListProductSpecifications(ctx context.Context, id int64) ([]repository.ListProductSpecificationsRow, error) {
	return []repository.ListProductSpecificationsRow{{Name: "Color", Value: "Black"}}, nil
}

func (m *mockCatalogRepo) ListProductReviews(ctx context.Context, id int64) ([]repository.ListProductReviewsRow, error) {
	return []repository.ListProductReviewsRow{{ID: 1, Username: "ivan", Text: "Good", Rating: 4}}, nil
}

func (m *mockCatalogRepo) GetProductReviewStats(ctx context.Context, id int64) (repository.GetProductReviewStatsRow, error) {
	return repository.GetProductReviewStatsRow{ReviewCount: 3, Rating: 4.333}, nil
}

// mapCache is a process-local cache.Cache for tests.
type mapCache map[string]any

func (c mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]domain.Category:
		*d = v.([]domain.Category)
	default:
		return false, errors.New("unsupported type")
	}
	return true, nil
}

func (c mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c[key] = value
	return nil
}

func (c mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c, k)
	}
	return nil
}

func (c mapCache) DeletePrefix(context.Context, string) error { return nil }

func TestCatalogService_CategoriesTree(t *testing.T) {
	repo := &mockCatalogRepo{categories: []repository.Category{
		{ID: 1, Name: "Electronics", Slug: "electronics", IconUrl: pgtype.Text{String: "/media/e.svg", Valid: true}},
		{ID: 2, Name: "Phones", Slug: "phones", ParentID: pgtype.Int8{Int64: 1, Valid: true}},
		{ID: 3, Name: "Books", Slug: "books"},
	}}
	c := mapCache{}
	svc := NewCatalogService(repo, c, time.Minute, nil)

	tree, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Electronics", tree[0].Name)
	assert.Equal(t, "/media/e.svg", tree[0].Image.Src)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, int64(1), *tree[0].Subcategories[0].Parent)
	assert.Empty(t, tree[1].Subcategories)

	_, err = svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second call is served from cache")

	require.NoError(t, c.Delete(context.Background(), cache.KeyCategories))
	_, err = svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCatalogService_ListProducts(t *testing.T) {
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	repo := &mockCatalogRepo{
		total: 45,
		products: []repository.ProductListRow{
			{ID: 10, CategoryID: 2, Title: "Phone", Price: decimal.RequireFromString("99.99"), CreatedAt: created, ReviewCount: 2, Rating: 4.56},
			{ID: 11, CategoryID: 2, Title: "Case", Price: decimal.RequireFromString("9.99"), CreatedAt: created},
		},
		images: []repository.ProductImage{{ProductID: 10, Url: "/media/p.jpg", Alt: "Phone"}},
		tags:   []repository.ListProductTagsRow{{ProductID: 10, ID: 1, Name: "new"}},
	}
	svc := NewCatalogService(repo, nil, 0, nil)
	category := int64(2)
	minPrice := decimal.NewFromInt(5)

	page, err := svc.ListProducts(context.Background(), domain.CatalogQuery{
		CategoryID:   &category,
		MinPrice:     &minPrice,
		FreeDelivery: true,
		Sort:         domain.SortPriceAsc,
		Page:         2,
		Limit:        20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(45), page.Total)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.LastPage)
	require.Len(t, page.Items, 2)
	assert.Equal(t, []domain.Image{{Src: "/media/p.jpg", Alt: "Phone"}}, page.Items[0].Images)
	assert.Equal(t, 4.6, page.Items[0].Rating)
	assert.Empty(t, page.Items[1].Images)
	assert.NotNil(t, page.Items[1].Tags)

	assert.Equal(t, int32(20), repo.listProductsArg.Offset)
	assert.Equal(t, "price", repo.listProductsArg.Sort)
	assert.True(t, repo.countArg.FreeDelivery)
	assert.False(t, repo.countArg.Available)
	assert.True(t, repo.countArg.MinPrice.Valid)
	assert.False(t, repo.countArg.MaxPrice.Valid)
}

func TestCatalogService_Product(t *testing.T) {
	repo := &mockCatalogRepo{product: &repository.Product{
		ID:       10,
		Slug:     "phone",
		Title:    "Phone",
		BrandID:  pgtype.Int8{Int64: 3, Valid: true},
		IsActive: true,
	}}
	svc := NewCatalogService(repo, nil, 0, nil)

	byID, err := svc.Product(context.Background(), "10")
	require.NoError(t, err)
	bySlug, err := svc.Product(context.Background(), "phone")
	require.NoError(t, err)
	assert.Equal(t, byID, bySlug)

	assert.Equal(t, "Acme", byID.Brand.Name)
	assert.Equal(t, []domain.Specification{{Name: "Color", Value: "Black"}}, byID.Specifications)
	require.Len(t, byID.Reviews, 1)
	assert.Equal(t, "no-reply@mail.ru", byID.Reviews[0].Email)
	assert.Equal(t, 4.3, byID.Rating)

	_, err = svc.Product(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	repo.product.IsActive = false
	_, err = svc.Product(context.Background(), "10")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
