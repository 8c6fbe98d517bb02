package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Image is a resolved media reference. Src is fixed when the image is stored
// and never recomputed on read.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Category is a node of the catalog tree.
type Category struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Parent        *int64     `json:"parent"`
	Image         Image      `json:"image"`
	Subcategories []Category `json:"subcategories"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Specification is one feature/value pair shown on the product card.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Review is the public form of a product review.
type Review struct {
	Author string    `json:"author"`
	Email  string    `json:"email"`
	Text   string    `json:"text"`
	Rate   int16     `json:"rate"`
	Date   time.Time `json:"date"`
}

// ProductShort is the list representation of a product.
type ProductShort struct {
	ID           int64           `json:"id"`
	Category     int64           `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Count        int32           `json:"count"`
	Date         time.Time       `json:"date"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	FreeDelivery bool            `json:"freeDelivery"`
	Images       []Image         `json:"images"`
	Tags         []Tag           `json:"tags"`
	Reviews      int64           `json:"reviews"`
	Rating       float64         `json:"rating"`
}

// ProductDetail is the full product card.
type ProductDetail struct {
	ID              int64           `json:"id"`
	Category        int64           `json:"category"`
	Brand           *Brand          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	Count           int32           `json:"count"`
	Date            time.Time       `json:"date"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	FullDescription string          `json:"fullDescription"`
	FreeDelivery    bool            `json:"freeDelivery"`
	Limited         bool            `json:"limited"`
	Images          []Image         `json:"images"`
	Tags            []Tag           `json:"tags"`
	Specifications  []Specification `json:"specifications"`
	Reviews         []Review        `json:"reviews"`
	Rating          float64         `json:"rating"`
}

// SortKey is one of the enumerated product list orderings. Every ordering
// falls back to id descending on ties.
type SortKey string

const (
	SortPriceAsc   SortKey = "price"
	SortPriceDesc  SortKey = "-price"
	SortPopularity SortKey = "popularity"
	SortReviews    SortKey = "reviews"
	SortNovelty    SortKey = "novelty"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortPriceAsc, SortPriceDesc, SortPopularity, SortReviews, SortNovelty:
		return true
	}
	return false
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CatalogQuery is the validated product list query. Nil and false fields are
// not filtered on; all set filters combine with AND.
type CatalogQuery struct {
	CategoryID   *int64
	Name         string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	FreeDelivery bool
	Available    bool
	Sort         SortKey
	Page         int
	Limit        int
}

// Offset returns the row offset for the query's page.
func (q CatalogQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// ProductPage is one page of the product list.
type ProductPage struct {
	Items       []ProductShort `json:"items"`
	CurrentPage int            `json:"currentPage"`
	LastPage    int            `json:"lastPage"`
	Total       int64          `json:"total"`
}

// LastPage returns the number of the last page, at least 1.
func LastPage(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type BrandFacet struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// FilterOptions describes the values a client can filter the catalog by.
type FilterOptions struct {
	Brands   []BrandFacet    `json:"brands"`
	MinPrice decimal.Decimal `json:"minPrice"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
}

// Banner promotes a root category on the home page.
type Banner struct {
	Title        string  `json:"title"`
	Images       []Image `json:"images"`
	Link         string  `json:"link"`
	Category     int64   `json:"category"`
	CategorySlug string  `json:"categorySlug"`
}
