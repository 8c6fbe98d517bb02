package storefront

import (
	"net/http"

	"github.com/dukerupert/vitrina/internal/cookie"
	"github.com/dukerupert/vitrina/internal/handler"
	"github.com/dukerupert/vitrina/internal/middleware"
	"github.com/dukerupert/vitrina/internal/service"
)

// AuthHandler handles sign-up, sign-in and sign-out.
type AuthHandler struct {
	users   service.UserService
	cookies *cookie.Config
}

func NewAuthHandler(users service.UserService, cookies *cookie.Config) *AuthHandler {
	return &AuthHandler{users: users, cookies: cookies}
}

// SignUp handles POST /api/sign-up. The new user is signed in and any
// guest cart behind the current cookie moves to them.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in service.SignUpInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	login, err := h.users.Register(r.Context(), in, cookie.Get(r, cookie.SessionCookieName))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.cookies.SetSession(w, login.Session.Token)
	middleware.GetLogger(r.Context()).Info("user registered", "user_id", login.User.ID)
	handler.WriteJSON(w, http.StatusCreated, login.User)
}

// SignIn handles POST /api/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in service.SignInInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	login, err := h.users.SignIn(r.Context(), in, cookie.Get(r, cookie.SessionCookieName))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.cookies.SetSession(w, login.Session.Token)
	handler.WriteJSON(w, http.StatusOK, login.User)
}

// SignOut handles POST /api/sign-out. It succeeds without a session too.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.users.SignOut(r.Context(), cookie.Get(r, cookie.SessionCookieName)); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.cookies.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}
