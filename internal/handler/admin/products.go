// Package admin serves the staff-only catalog and order endpoints. Every
// route runs behind middleware.RequireStaff.
package admin

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/handler"
	"github.com/dukerupert/vitrina/internal/middleware"
	"github.com/dukerupert/vitrina/internal/service"
)

// ProductHandler creates products and attaches images and specifications.
type ProductHandler struct {
	catalog service.CatalogAdminService
}

func NewProductHandler(catalog service.CatalogAdminService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Create handles POST /api/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), in)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("product created", "product_id", product.ID, "slug", product.Slug)
	handler.WriteJSON(w, http.StatusCreated, product)
}

// AddImage handles POST /api/admin/products/{id}/images
func (h *ProductHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var in service.ImageInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	image, err := h.catalog.AddImage(r.Context(), productID, in)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, image)
}

// SetFeature handles PUT /api/admin/products/{id}/features
func (h *ProductHandler) SetFeature(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var in service.FeatureValueInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	spec, err := h.catalog.SetFeatureValue(r.Context(), productID, in)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, spec)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NotFound("admin.path", name, raw)
	}
	return id, nil
}
