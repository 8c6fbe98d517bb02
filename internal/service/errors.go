package service

import (
	"github.com/dukerupert/vitrina/internal/domain"
)

// Catalog errors
var (
	ErrProductNotFound  = domain.Errorf(domain.ENOTFOUND, "", "Product not found")
	ErrCategoryNotFound = domain.Errorf(domain.ENOTFOUND, "", "Category not found")
	ErrBrandNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Brand not found")
	ErrFeatureNotFound  = domain.Errorf(domain.ENOTFOUND, "", "Feature not found")
	ErrSlugTaken        = domain.Errorf(domain.ECONFLICT, "", "A product with this slug already exists")
	ErrFeatureValueSet  = domain.Errorf(domain.ECONFLICT, "", "This feature is already set for the product")
	ErrReviewExists     = domain.Errorf(domain.ECONFLICT, "", "You have already reviewed this product")
)

// Cart errors
var (
	ErrCartLineNotFound = domain.Errorf(domain.ENOTFOUND, "", "Cart item not found")
)

// Order errors
var (
	ErrOrderNotFound     = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
	ErrInvalidTransition = domain.Errorf(domain.ECONFLICT, "", "Order status cannot be changed to the requested value")
	ErrUnknownStatus     = domain.Errorf(domain.EINVALID, "", "Unknown order status")
	ErrOrderTooLarge     = domain.Invalid("", "Order total exceeds the maximum supported amount")
)

// Identity errors
var (
	ErrInvalidCredentials = domain.Unauthorized("", "Invalid username or password")
	ErrAuthRequired       = domain.Unauthorized("", "Authentication required")
	ErrUsernameTaken      = domain.Errorf(domain.ECONFLICT, "", "Username is already taken")
	ErrEmailTaken         = domain.Errorf(domain.ECONFLICT, "", "Email is already in use")
	ErrPhoneTaken         = domain.Errorf(domain.ECONFLICT, "", "Phone is already in use")
	ErrUserNotFound       = domain.Errorf(domain.ENOTFOUND, "", "User not found")
	ErrSessionNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Session not found")
)
