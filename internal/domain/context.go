// Package domain holds the storefront's core types: catalog, carts, orders,
// identities and the error taxonomy shared by every layer.
package domain

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	userContextKey contextKey = iota
	ownerContextKey
)

// CurrentUser is the authenticated user attached to a request.
type CurrentUser struct {
	ID       int64
	Username string
	IsStaff  bool
}

// NewContextWithUser returns a new context with the user attached.
func NewContextWithUser(ctx context.Context, user *CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user from context.
// Returns nil if no user is present.
func UserFromContext(ctx context.Context) *CurrentUser {
	user, _ := ctx.Value(userContextKey).(*CurrentUser)
	return user
}

// IsAuthenticated returns true if there is a user in context.
func IsAuthenticated(ctx context.Context) bool {
	return UserFromContext(ctx) != nil
}

// NewContextWithOwner returns a new context carrying the resolved cart owner.
func NewContextWithOwner(ctx context.Context, owner Owner) context.Context {
	return context.WithValue(ctx, ownerContextKey, owner)
}

// OwnerFromContext returns the resolved owner and whether one was set.
func OwnerFromContext(ctx context.Context) (Owner, bool) {
	owner, ok := ctx.Value(ownerContextKey).(Owner)
	return owner, ok && !owner.IsZero()
}
