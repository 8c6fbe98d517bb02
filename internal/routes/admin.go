package routes

import (
	"github.com/dukerupert/vitrina/internal/middleware"
	"github.com/dukerupert/vitrina/internal/router"
)

// RegisterAdminRoutes registers staff-only routes under /admin of r.
// Anonymous callers get 401, signed-in customers 403.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	staff := r.Route("/admin", middleware.RequireStaff)

	staff.Post("/products", deps.ProductHandler.Create)
	staff.Post("/products/{id}/images", deps.ProductHandler.AddImage)
	staff.Put("/products/{id}/features", deps.ProductHandler.SetFeature)

	staff.Patch("/orders/{id}/status", deps.OrderHandler.UpdateStatus)
}
