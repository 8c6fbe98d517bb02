package routes

import (
	"github.com/dukerupert/vitrina/internal/middleware"
	"github.com/dukerupert/vitrina/internal/router"
)

// RegisterStorefrontRoutes registers the public API under r, which is
// expected to be the /api sub-router.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog
	r.Get("/categories", deps.CatalogHandler.Categories)
	r.Get("/catalog", deps.CatalogHandler.Catalog)
	r.Get("/products/filters", deps.CatalogHandler.Filters)
	r.Get("/products/popular", deps.CatalogHandler.Popular)
	r.Get("/products/limited", deps.CatalogHandler.Limited)
	r.Get("/products/{ref}", deps.CatalogHandler.Product)
	r.Get("/tags", deps.CatalogHandler.Tags)
	r.Get("/banners", deps.CatalogHandler.Banners)

	// Reviews (listing is public, writing needs an account)
	r.Get("/products/{id}/reviews", deps.ReviewHandler.List)
	r.Post("/products/{id}/reviews", deps.ReviewHandler.Create, middleware.RequireAuth)

	// Basket, guest or user
	basket := r.Group(deps.RequireOwner)
	basket.Get("/basket", deps.BasketHandler.Get)
	basket.Post("/basket", deps.BasketHandler.Add)
	basket.Delete("/basket", deps.BasketHandler.Decrement)
	basket.Patch("/basket/items/{lineId}", deps.BasketHandler.UpdateLine)
	basket.Delete("/basket/items/{lineId}", deps.BasketHandler.RemoveLine)
	basket.Delete("/basket/items", deps.BasketHandler.Clear)

	// Orders, guest or user
	orders := r.Group(deps.RequireOwner)
	orders.Post("/orders", deps.OrderHandler.Create, deps.StrictLimit)
	orders.Get("/orders", deps.OrderHandler.List)
	orders.Get("/orders/{id}", deps.OrderHandler.Get)
	orders.Post("/orders/{id}", deps.OrderHandler.MarkPaid)

	// Identity
	r.Post("/sign-up", deps.AuthHandler.SignUp, deps.StrictLimit)
	r.Post("/sign-in", deps.AuthHandler.SignIn, deps.StrictLimit)
	r.Post("/sign-out", deps.AuthHandler.SignOut)

	// Profile
	account := r.Group(middleware.RequireAuth)
	account.Get("/profile", deps.ProfileHandler.Get)
	account.Post("/profile", deps.ProfileHandler.Update)
	account.Post("/profile/password", deps.ProfileHandler.ChangePassword)
	account.Post("/profile/avatar", deps.ProfileHandler.SetAvatar)
}
