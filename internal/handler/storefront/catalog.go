package storefront

import (
	"net/http"

	"github.com/dukerupert/vitrina/internal/handler"
	"github.com/dukerupert/vitrina/internal/service"
)

// CatalogHandler serves the public catalog.
type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Categories handles GET /api/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, categories)
}

// Catalog handles GET /api/catalog
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	q, err := service.ParseCatalogQuery(r.URL.Query())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	page, err := h.catalog.ListProducts(r.Context(), q)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, page)
}

// Filters handles GET /api/products/filters
func (h *CatalogHandler) Filters(w http.ResponseWriter, r *http.Request) {
	categoryID, err := service.ParseCategoryParam(r.URL.Query())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	filters, err := h.catalog.Filters(r.Context(), categoryID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, filters)
}

// Popular handles GET /api/products/popular
func (h *CatalogHandler) Popular(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Popular(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, products)
}

// Limited handles GET /api/products/limited
func (h *CatalogHandler) Limited(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Limited(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, products)
}

// Product handles GET /api/products/{ref}. A numeric ref is an id,
// anything else a slug.
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Product(r.Context(), r.PathValue("ref"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, product)
}

// Tags handles GET /api/tags
func (h *CatalogHandler) Tags(w http.ResponseWriter, r *http.Request) {
	categoryID, err := service.ParseCategoryParam(r.URL.Query())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	tags, err := h.catalog.Tags(r.Context(), categoryID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, tags)
}

// Banners handles GET /api/banners
func (h *CatalogHandler) Banners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.catalog.Banners(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, banners)
}
