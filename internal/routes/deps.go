// Package routes mounts the storefront and admin handlers on the router
// with the middleware each route group needs.
package routes

import (
	"github.com/dukerupert/vitrina/internal/handler/admin"
	"github.com/dukerupert/vitrina/internal/handler/storefront"
	"github.com/dukerupert/vitrina/internal/router"
)

// StorefrontDeps contains dependencies for the public API routes
type StorefrontDeps struct {
	CatalogHandler *storefront.CatalogHandler
	ReviewHandler  *storefront.ReviewHandler
	BasketHandler  *storefront.BasketHandler
	OrderHandler   *storefront.OrderHandler
	AuthHandler    *storefront.AuthHandler
	ProfileHandler *storefront.ProfileHandler

	// RequireOwner resolves the cart owner, allocating a guest session
	// when needed (middleware.WithOwner).
	RequireOwner router.Middleware

	// StrictLimit guards sign-in, sign-up and checkout.
	StrictLimit router.Middleware
}

// AdminDeps contains dependencies for staff-only routes
type AdminDeps struct {
	ProductHandler *admin.ProductHandler
	OrderHandler   *admin.OrderHandler
}
