package middleware

import (
	"context"
	"net/http"

	"github.com/dukerupert/vitrina/internal/cookie"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/dukerupert/vitrina/internal/telemetry"
)

// WithUser resolves the session cookie to a signed-in user and adds it to
// the request context. Guests and invalid sessions pass through unchanged.
func WithUser(sessions service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Get(r, cookie.SessionCookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := sessions.CurrentUser(r.Context(), token)
			if err != nil {
				if !domain.IsCode(err, domain.ENOTFOUND) {
					GetLogger(r.Context()).Warn("failed to resolve session", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			telemetry.SetUserOnContext(r.Context(), user.ID, user.Username)
			ctx := domain.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without a signed-in user with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects anonymous requests with 401 and non-staff users
// with 403.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}
		if !user.IsStaff {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithOwner resolves the cart owner before the handler runs: the signed-in
// user if there is one, otherwise the guest session behind the cookie. A
// guest without a valid session gets a new one and a fresh cookie.
func WithOwner(sessions service.SessionService, cookies *cookie.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r.Context()); user != nil {
				ctx := domain.NewContextWithOwner(r.Context(), domain.UserOwner(user.ID))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sess, created, err := sessions.EnsureGuest(r.Context(), cookie.Get(r, cookie.SessionCookieName))
			if err != nil {
				respondInternalError(w, r, err)
				return
			}
			if created {
				cookies.SetSession(w, sess.Token)
			}

			ctx := domain.NewContextWithOwner(r.Context(), sess.Owner())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the signed-in user, or nil.
func GetUserFromContext(ctx context.Context) *domain.CurrentUser {
	return domain.UserFromContext(ctx)
}
