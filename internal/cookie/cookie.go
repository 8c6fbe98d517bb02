// Package cookie sets and reads the storefront session cookie.
package cookie

import (
	"net/http"
	"time"
)

// SessionCookieName carries the session token for guests and users alike.
const SessionCookieName = "vitrina_session"

// Config holds cookie attributes shared by every session cookie.
type Config struct {
	// Domain is optional. Empty scopes the cookie to the request host.
	Domain string

	// Secure should be true everywhere except local development.
	Secure bool

	// MaxAge is the session lifetime.
	MaxAge time.Duration
}

func NewConfig(domain string, secure bool, maxAge time.Duration) *Config {
	return &Config{Domain: domain, Secure: secure, MaxAge: maxAge}
}

// SetSession writes the session cookie.
func (c *Config) SetSession(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes the session cookie.
func (c *Config) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
