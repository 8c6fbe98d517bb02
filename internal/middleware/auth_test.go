package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/vitrina/internal/cookie"
	"github.com/dukerupert/vitrina/internal/domain"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MOCK SESSION SERVICE
// =============================================================================

type mockSessionService struct {
	currentUserFunc func(ctx context.Context, token string) (*domain.CurrentUser, error)
	ensureGuestFunc func(ctx context.Context, token string) (*domain.Session, bool, error)
}

func (m *mockSessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	return nil, service.ErrSessionNotFound
}

func (m *mockSessionService) CurrentUser(ctx context.Context, token string) (*domain.CurrentUser, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx, token)
	}
	return nil, service.ErrSessionNotFound
}

func (m *mockSessionService) EnsureGuest(ctx context.Context, token string) (*domain.Session, bool, error) {
	if m.ensureGuestFunc != nil {
		return m.ensureGuestFunc(ctx, token)
	}
	return nil, false, errors.New("not implemented")
}

func (m *mockSessionService) Delete(ctx context.Context, token string) error {
	return nil
}

func withSessionCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: token})
	return r
}

// =============================================================================
// WithUser
// =============================================================================

func TestWithUser_ResolvesSignedInUser(t *testing.T) {
	sessions := &mockSessionService{
		currentUserFunc: func(ctx context.Context, token string) (*domain.CurrentUser, error) {
			assert.Equal(t, "user-token", token)
			return &domain.CurrentUser{ID: 7, Username: "alice"}, nil
		},
	}

	var got *domain.CurrentUser
	handler := WithUser(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r.Context())
	}))

	req := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/profile", nil), "user-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestWithUser_PassesThroughGuests(t *testing.T) {
	tests := []struct {
		name  string
		token string
		err   error
	}{
		{name: "no cookie"},
		{name: "guest session", token: "guest-token", err: service.ErrSessionNotFound},
		{name: "lookup failure", token: "any", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &mockSessionService{
				currentUserFunc: func(ctx context.Context, token string) (*domain.CurrentUser, error) {
					return nil, tt.err
				},
			}

			called := false
			handler := WithUser(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Nil(t, GetUserFromContext(r.Context()))
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				withSessionCookie(req, tt.token)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, called)
		})
	}
}

// =============================================================================
// RequireAuth / RequireStaff
// =============================================================================

func TestRequireAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAuth(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(domain.NewContextWithUser(req.Context(), &domain.CurrentUser{ID: 1}))
		rec := httptest.NewRecorder()
		RequireAuth(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		user   *domain.CurrentUser
		status int
		code   string
	}{
		{name: "anonymous", status: http.StatusUnauthorized, code: `"code":"unauthorized"`},
		{name: "customer", user: &domain.CurrentUser{ID: 1}, status: http.StatusForbidden, code: `"code":"forbidden"`},
		{name: "staff", user: &domain.CurrentUser{ID: 2, IsStaff: true}, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/products", nil)
			if tt.user != nil {
				req = req.WithContext(domain.NewContextWithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			RequireStaff(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Contains(t, rec.Body.String(), tt.code)
			}
		})
	}
}

// =============================================================================
// WithOwner
// =============================================================================

func TestWithOwner_SignedInUser(t *testing.T) {
	sessions := &mockSessionService{
		ensureGuestFunc: func(ctx context.Context, token string) (*domain.Session, bool, error) {
			t.Fatal("guest session must not be allocated for a signed-in user")
			return nil, false, nil
		},
	}

	var owner domain.Owner
	handler := WithOwner(sessions, cookie.NewConfig("", false, time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, _ = domain.OwnerFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/basket", nil)
	req = req.WithContext(domain.NewContextWithUser(req.Context(), &domain.CurrentUser{ID: 9}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, domain.UserOwner(9), owner)
	assert.Empty(t, rec.Result().Cookies())
}

func TestWithOwner_NewGuestGetsCookie(t *testing.T) {
	sessions := &mockSessionService{
		ensureGuestFunc: func(ctx context.Context, token string) (*domain.Session, bool, error) {
			assert.Empty(t, token)
			return &domain.Session{Token: "fresh"}, true, nil
		},
	}

	var owner domain.Owner
	handler := WithOwner(sessions, cookie.NewConfig("", false, time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, _ = domain.OwnerFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/basket", nil))

	assert.Equal(t, domain.GuestOwner("fresh"), owner)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookie.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "fresh", cookies[0].Value)
}

func TestWithOwner_ExistingGuestKeepsCookie(t *testing.T) {
	sessions := &mockSessionService{
		ensureGuestFunc: func(ctx context.Context, token string) (*domain.Session, bool, error) {
			return &domain.Session{Token: token}, false, nil
		},
	}

	var owner domain.Owner
	handler := WithOwner(sessions, cookie.NewConfig("", false, time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, _ = domain.OwnerFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/basket", nil), "existing"))

	assert.Equal(t, domain.GuestOwner("existing"), owner)
	assert.Empty(t, rec.Result().Cookies())
}

func TestWithOwner_SessionFailure(t *testing.T) {
	sessions := &mockSessionService{
		ensureGuestFunc: func(ctx context.Context, token string) (*domain.Session, bool, error) {
			return nil, false, errors.New("db down")
		},
	}

	called := false
	handler := WithOwner(sessions, cookie.NewConfig("", false, time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/basket", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
