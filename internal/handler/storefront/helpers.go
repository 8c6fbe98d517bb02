// Package storefront serves the public JSON API: catalog, basket, orders,
// identity and profile.
package storefront

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/handler"
)

// pathID parses a positive integer path value. Anything else is reported
// as a missing resource.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NotFound("request.path", name, raw)
	}
	return id, nil
}

// ownerFrom returns the cart owner resolved by middleware.WithOwner. It
// writes a 500 and returns false when the route was mounted without it.
func ownerFrom(w http.ResponseWriter, r *http.Request) (domain.Owner, bool) {
	owner, ok := domain.OwnerFromContext(r.Context())
	if !ok || owner.IsZero() {
		handler.InternalErrorResponse(w, r, domain.Errorf(domain.EINTERNAL, "request.owner", "owner missing from context"))
		return domain.Owner{}, false
	}
	return owner, true
}

// userFrom returns the signed-in user, writing a 401 when there is none.
func userFrom(w http.ResponseWriter, r *http.Request) (*domain.CurrentUser, bool) {
	user := domain.UserFromContext(r.Context())
	if user == nil {
		handler.UnauthorizedResponse(w, r)
		return nil, false
	}
	return user, true
}
