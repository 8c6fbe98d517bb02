package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const listActiveCategories = `-- name: ListActiveCategories :many
SELECT id, parent_id, name, slug, icon_url, is_active, created_at
FROM categories
WHERE is_active
ORDER BY id
`

func (q *Queries) ListActiveCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listActiveCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		var i Category
		if err := rows.Scan(
			&i.ID,
			&i.ParentID,
			&i.Name,
			&i.Slug,
			&i.IconUrl,
			&i.IsActive,
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

const listBannerCategories = `-- name: ListBannerCategories :many
SELECT id, parent_id, name, slug, icon_url, is_active, created_at
FROM categories
WHERE is_active AND parent_id IS NULL
ORDER BY id
LIMIT $1
`

func (q *Queries) ListBannerCategories(ctx context.Context, limit int32) ([]Category, error) {
	rows, err := q.db.Query(ctx, listBannerCategories, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		var i Category
		if err := rows.Scan(
			&i.ID,
			&i.ParentID,
			&i.Name,
			&i.Slug,
			&i.IconUrl,
			&i.IsActive,
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

const getProductByID = `-- name: GetProductByID :one
SELECT id, category_id, brand_id, title, slug, short_description, description, full_description,
       price, quantity_available, free_delivery, is_limited, is_active, sort_index, purchases_count, created_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(ctx, getProductByID, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.CategoryID,
		&i.BrandID,
		&i.Title,
		&i.Slug,
		&i.ShortDescription,
		&i.Description,
		&i.FullDescription,
		&i.Price,
		&i.QuantityAvailable,
		&i.FreeDelivery,
		&i.IsLimited,
		&i.IsActive,
		&i.SortIndex,
		&i.PurchasesCount,
		&i.CreatedAt,
	)
	return i, err
}

const getProductBySlug = `-- name: GetProductBySlug :one
SELECT id, category_id, brand_id, title, slug, short_description, description, full_description,
       price, quantity_available, free_delivery, is_limited, is_active, sort_index, purchases_count, created_at
FROM products
WHERE slug = $1
`

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	row := q.db.QueryRow(ctx, getProductBySlug, slug)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.CategoryID,
		&i.BrandID,
		&i.Title,
		&i.Slug,
		&i.ShortDescription,
		&i.Description,
		&i.FullDescription,
		&i.Price,
		&i.QuantityAvailable,
		&i.FreeDelivery,
		&i.IsLimited,
		&i.IsActive,
		&i.SortIndex,
		&i.PurchasesCount,
		&i.CreatedAt,
	)
	return i, err
}

const getBrand = `-- name: GetBrand :one
SELECT id, name FROM brands WHERE id = $1
`

func (q *Queries) GetBrand(ctx context.Context, id int64) (Brand, error) {
	row := q.db.QueryRow(ctx, getBrand, id)
	var i Brand
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const getCategory = `-- name: GetCategory :one
SELECT id, parent_id, name, slug, icon_url, is_active, created_at
FROM categories
WHERE id = $1
`

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	row := q.db.QueryRow(ctx, getCategory, id)
	var i Category
	err := row.Scan(
		&i.ID,
		&i.ParentID,
		&i.Name,
		&i.Slug,
		&i.IconUrl,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

const listProducts = `-- name: ListProducts :many
SELECT p.id, p.category_id, p.title, p.slug, p.short_description, p.price,
       p.quantity_available, p.free_delivery, p.created_at,
       COALESCE(r.review_count, 0)::bigint AS review_count,
       COALESCE(r.rating, 0)::float8 AS rating
FROM products p
JOIN categories c ON c.id = p.category_id
LEFT JOIN (
    SELECT product_id, COUNT(*) AS review_count, AVG(rating) AS rating
    FROM reviews
    GROUP BY product_id
) r ON r.product_id = p.id
WHERE p.is_active AND c.is_active
  AND ($1::bigint IS NULL OR p.category_id = $1 OR c.parent_id = $1)
  AND ($2::text = '' OR strpos(lower(p.title), lower($2)) > 0)
  AND ($3::numeric IS NULL OR p.price >= $3)
  AND ($4::numeric IS NULL OR p.price <= $4)
  AND (NOT $5::boolean OR p.free_delivery)
  AND (NOT $6::boolean OR p.quantity_available > 0)
ORDER BY
  CASE WHEN $7::text = 'price' THEN p.price END ASC,
  CASE WHEN $7::text = '-price' THEN p.price END DESC,
  CASE WHEN $7::text = 'popularity' THEN p.purchases_count END DESC,
  CASE WHEN $7::text = 'reviews' THEN COALESCE(r.review_count, 0) END DESC,
  CASE WHEN $7::text = 'novelty' THEN p.created_at END DESC,
  p.id DESC
LIMIT $8 OFFSET $9
`

type ListProductsParams struct {
	CategoryID   pgtype.Int8         `json:"category_id"`
	Name         string              `json:"name"`
	MinPrice     decimal.NullDecimal `json:"min_price"`
	MaxPrice     decimal.NullDecimal `json:"max_price"`
	FreeDelivery bool                `json:"free_delivery"`
	Available    bool                `json:"available"`
	Sort         string              `json:"sort"`
	Limit        int32               `json:"limit"`
	Offset       int32               `json:"offset"`
}

type ProductListRow struct {
	ID                int64           `json:"id"`
	CategoryID        int64           `json:"category_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	ShortDescription  string          `json:"short_description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int32           `json:"quantity_available"`
	FreeDelivery      bool            `json:"free_delivery"`
	CreatedAt         time.Time       `json:"created_at"`
	ReviewCount       int64           `json:"review_count"`
	Rating            float64         `json:"rating"`
}

func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]ProductListRow, error) {
	rows, err := q.db.Query(ctx, listProducts,
		arg.CategoryID,
		arg.Name,
		arg.MinPrice,
		arg.MaxPrice,
		arg.FreeDelivery,
		arg.Available,
		arg.Sort,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProductListRows(rows)
}

const countProducts = `-- name: CountProducts :one
SELECT COUNT(*)
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.is_active AND c.is_active
  AND ($1::bigint IS NULL OR p.category_id = $1 OR c.parent_id = $1)
  AND ($2::text = '' OR strpos(lower(p.title), lower($2)) > 0)
  AND ($3::numeric IS NULL OR p.price >= $3)
  AND ($4::numeric IS NULL OR p.price <= $4)
  AND (NOT $5::boolean OR p.free_delivery)
  AND (NOT $6::boolean OR p.quantity_available > 0)
`

type CountProductsParams struct {
	CategoryID   pgtype.Int8         `json:"category_id"`
	Name         string              `json:"name"`
	MinPrice     decimal.NullDecimal `json:"min_price"`
	MaxPrice     decimal.NullDecimal `json:"max_price"`
	FreeDelivery bool                `json:"free_delivery"`
	Available    bool                `json:"available"`
}

func (q *Queries) CountProducts(ctx context.Context, arg CountProductsParams) (int64, error) {
	row := q.db.QueryRow(ctx, countProducts,
		arg.CategoryID,
		arg.Name,
		arg.MinPrice,
		arg.MaxPrice,
		arg.FreeDelivery,
		arg.Available,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listPopularProducts = `-- name: ListPopularProducts :many
SELECT p.id, p.category_id, p.title, p.slug, p.short_description, p.price,
       p.quantity_available, p.free_delivery, p.created_at,
       COALESCE(r.review_count, 0)::bigint AS review_count,
       COALESCE(r.rating, 0)::float8 AS rating
FROM products p
JOIN categories c ON c.id = p.category_id
LEFT JOIN (
    SELECT product_id, COUNT(*) AS review_count, AVG(rating) AS rating
    FROM reviews
    GROUP BY product_id
) r ON r.product_id = p.id
WHERE p.is_active AND c.is_active
ORDER BY p.purchases_count DESC, p.sort_index, p.id DESC
LIMIT $1
`

func (q *Queries) ListPopularProducts(ctx context.Context, limit int32) ([]ProductListRow, error) {
	rows, err := q.db.Query(ctx, listPopularProducts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProductListRows(rows)
}

const listLimitedProducts = `-- name: ListLimitedProducts :many
SELECT p.id, p.category_id, p.title, p.slug, p.short_description, p.price,
       p.quantity_available, p.free_delivery, p.created_at,
       COALESCE(r.review_count, 0)::bigint AS review_count,
       COALESCE(r.rating, 0)::float8 AS rating
FROM products p
JOIN categories c ON c.id = p.category_id
LEFT JOIN (
    SELECT product_id, COUNT(*) AS review_count, AVG(rating) AS rating
    FROM reviews
    GROUP BY product_id
) r ON r.product_id = p.id
WHERE p.is_active AND c.is_active AND p.is_limited
ORDER BY p.sort_index, p.id DESC
LIMIT $1
`

func (q *Queries) ListLimitedProducts(ctx context.Context, limit int32) ([]ProductListRow, error) {
	rows, err := q.db.Query(ctx, listLimitedProducts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProductListRows(rows)
}

type productRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProductListRows(rows productRows) ([]ProductListRow, error) {
	items := []ProductListRow{}
	for rows.Next() {
		var i ProductListRow
		if err := rows.Scan(
			&i.ID,
			&i.CategoryID,
			&i.Title,
			&i.Slug,
			&i.ShortDescription,
			&i.Price,
			&i.QuantityAvailable,
			&i.FreeDelivery,
			&i.CreatedAt,
			&i.ReviewCount,
			&i.Rating,
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

const getProductReviewStats = `-- name: GetProductReviewStats :one
SELECT COUNT(*)::bigint AS review_count, COALESCE(AVG(rating), 0)::float8 AS rating
FROM reviews
WHERE product_id = $1
`

type GetProductReviewStatsRow struct {
	ReviewCount int64   `json:"review_count"`
	Rating      float64 `json:"rating"`
}

func (q *Queries) GetProductReviewStats(ctx context.Context, productID int64) (GetProductReviewStatsRow, error) {
	row := q.db.QueryRow(ctx, getProductReviewStats, productID)
	var i GetProductReviewStatsRow
	err := row.Scan(&i.ReviewCount, &i.Rating)
	return i, err
}

const listProductImages = `-- name: ListProductImages :many
SELECT id, product_id, url, alt, sort_order
FROM product_images
WHERE product_id = ANY($1::bigint[])
ORDER BY product_id, sort_order, id
`

func (q *Queries) ListProductImages(ctx context.Context, productIds []int64) ([]ProductImage, error) {
	rows, err := q.db.Query(ctx, listProductImages, productIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductImage{}
	for rows.Next() {
		var i ProductImage
		if err := rows.Scan(
			&i.ID,
			&i.ProductID,
			&i.Url,
			&i.Alt,
			&i.SortOrder,
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

const listProductTags = `-- name: ListProductTags :many
SELECT pt.product_id, t.id, t.name
FROM product_tags pt
JOIN tags t ON t.id = pt.tag_id
WHERE pt.product_id = ANY($1::bigint[])
ORDER BY pt.product_id, t.name
`

type ListProductTagsRow struct {
	ProductID int64  `json:"product_id"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
}

func (q *Queries) ListProductTags(ctx context.Context, productIds []int64) ([]ListProductTagsRow, error) {
	rows, err := q.db.Query(ctx, listProductTags, productIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListProductTagsRow{}
	for rows.Next() {
		var i ListProductTagsRow
		if err := rows.Scan(&i.ProductID, &i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTags = `-- name: ListTags :many
SELECT DISTINCT t.id, t.name
FROM tags t
LEFT JOIN product_tags pt ON pt.tag_id = t.id
LEFT JOIN products p ON p.id = pt.product_id
LEFT JOIN categories c ON c.id = p.category_id
WHERE $1::bigint IS NULL OR p.category_id = $1 OR c.parent_id = $1
ORDER BY t.name
`

func (q *Queries) ListTags(ctx context.Context, categoryID pgtype.Int8) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Tag{}
	for rows.Next() {
		var i Tag
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listProductSpecifications = `-- name: ListProductSpecifications :many
SELECT f.name, fv.value
FROM feature_values fv
JOIN features f ON f.id = fv.feature_id
WHERE fv.product_id = $1
ORDER BY f.name
`

type ListProductSpecificationsRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (q *Queries) ListProductSpecifications(ctx context.Context, productID int64) ([]ListProductSpecificationsRow, error) {
	rows, err := q.db.Query(ctx, listProductSpecifications, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListProductSpecificationsRow{}
	for rows.Next() {
		var i ListProductSpecificationsRow
		if err := rows.Scan(&i.Name, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listBrandFacets = `-- name: ListBrandFacets :many
SELECT b.id, b.name, COUNT(p.id)::bigint AS product_count
FROM brands b
JOIN products p ON p.brand_id = b.id AND p.is_active
JOIN categories c ON c.id = p.category_id AND c.is_active
WHERE $1::bigint IS NULL OR p.category_id = $1 OR c.parent_id = $1
GROUP BY b.id, b.name
ORDER BY b.name
`

type ListBrandFacetsRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}

func (q *Queries) ListBrandFacets(ctx context.Context, categoryID pgtype.Int8) ([]ListBrandFacetsRow, error) {
	rows, err := q.db.Query(ctx, listBrandFacets, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListBrandFacetsRow{}
	for rows.Next() {
		var i ListBrandFacetsRow
		if err := rows.Scan(&i.ID, &i.Name, &i.ProductCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPriceBounds = `-- name: GetPriceBounds :one
SELECT MIN(p.price)::numeric AS min_price, MAX(p.price)::numeric AS max_price
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.is_active AND c.is_active
  AND ($1::bigint IS NULL OR p.category_id = $1 OR c.parent_id = $1)
`

type GetPriceBoundsRow struct {
	MinPrice decimal.NullDecimal `json:"min_price"`
	MaxPrice decimal.NullDecimal `json:"max_price"`
}

func (q *Queries) GetPriceBounds(ctx context.Context, categoryID pgtype.Int8) (GetPriceBoundsRow, error) {
	row := q.db.QueryRow(ctx, getPriceBounds, categoryID)
	var i GetPriceBoundsRow
	err := row.Scan(&i.MinPrice, &i.MaxPrice)
	return i, err
}

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (
    category_id, brand_id, title, slug, short_description, description, full_description,
    price, quantity_available, free_delivery, is_limited, sort_index
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
)
RETURNING id, category_id, brand_id, title, slug, short_description, description, full_description,
          price, quantity_available, free_delivery, is_limited, is_active, sort_index, purchases_count, created_at
`

type CreateProductParams struct {
	CategoryID        int64           `json:"category_id"`
	BrandID           pgtype.Int8     `json:"brand_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	ShortDescription  string          `json:"short_description"`
	Description       string          `json:"description"`
	FullDescription   string          `json:"full_description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int32           `json:"quantity_available"`
	FreeDelivery      bool            `json:"free_delivery"`
	IsLimited         bool            `json:"is_limited"`
	SortIndex         int32           `json:"sort_index"`
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.CategoryID,
		arg.BrandID,
		arg.Title,
		arg.Slug,
		arg.ShortDescription,
		arg.Description,
		arg.FullDescription,
		arg.Price,
		arg.QuantityAvailable,
		arg.FreeDelivery,
		arg.IsLimited,
		arg.SortIndex,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.CategoryID,
		&i.BrandID,
		&i.Title,
		&i.Slug,
		&i.ShortDescription,
		&i.Description,
		&i.FullDescription,
		&i.Price,
		&i.QuantityAvailable,
		&i.FreeDelivery,
		&i.IsLimited,
		&i.IsActive,
		&i.SortIndex,
		&i.PurchasesCount,
		&i.CreatedAt,
	)
	return i, err
}

const createProductImage = `-- name: CreateProductImage :one
INSERT INTO product_images (product_id, url, alt, sort_order)
VALUES ($1, $2, $3, (SELECT COALESCE(MAX(sort_order) + 1, 0) FROM product_images WHERE product_id = $1))
RETURNING id, product_id, url, alt, sort_order
`

type CreateProductImageParams struct {
	ProductID int64  `json:"product_id"`
	Url       string `json:"url"`
	Alt       string `json:"alt"`
}

func (q *Queries) CreateProductImage(ctx context.Context, arg CreateProductImageParams) (ProductImage, error) {
	row := q.db.QueryRow(ctx, createProductImage, arg.ProductID, arg.Url, arg.Alt)
	var i ProductImage
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.Url,
		&i.Alt,
		&i.SortOrder,
	)
	return i, err
}

const getFeature = `-- name: GetFeature :one
SELECT id, name FROM features WHERE id = $1
`

func (q *Queries) GetFeature(ctx context.Context, id int64) (Feature, error) {
	row := q.db.QueryRow(ctx, getFeature, id)
	var i Feature
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const createFeatureValue = `-- name: CreateFeatureValue :one
INSERT INTO feature_values (product_id, feature_id, value)
VALUES ($1, $2, $3)
RETURNING id, product_id, feature_id, value
`

type CreateFeatureValueParams struct {
	ProductID int64  `json:"product_id"`
	FeatureID int64  `json:"feature_id"`
	Value     string `json:"value"`
}

func (q *Queries) CreateFeatureValue(ctx context.Context, arg CreateFeatureValueParams) (FeatureValue, error) {
	row := q.db.QueryRow(ctx, createFeatureValue, arg.ProductID, arg.FeatureID, arg.Value)
	var i FeatureValue
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.FeatureID,
		&i.Value,
	)
	return i, err
}

const incrementPurchases = `-- name: IncrementPurchases :exec
UPDATE products
SET purchases_count = LEAST(purchases_count::bigint + $2, 2147483647)::integer
WHERE id = $1
`

type IncrementPurchasesParams struct {
	ID       int64 `json:"id"`
	Quantity int32 `json:"quantity"`
}

func (q *Queries) IncrementPurchases(ctx context.Context, arg IncrementPurchasesParams) error {
	_, err := q.db.Exec(ctx, incrementPurchases, arg.ID, arg.Quantity)
	return err
}
