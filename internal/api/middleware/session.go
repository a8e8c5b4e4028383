// Package middleware holds the request gates composed in front of route
// handlers: identity-attach, require-authenticated and require-apex-host.
// Gates short-circuit: the first blocking gate that rejects stops the chain.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookie is the HTTP-only cookie carrying the session token.
const SessionCookie = "poyo_session"

// userContextKey is where the identity gate stores the resolved user.
const userContextKey = "user"

// SetSessionCookie attaches a session token to the response.
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// hostOnly lowercases a Host header and strips any port suffix.
func hostOnly(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if stripped, _, err := net.SplitHostPort(h); err == nil {
		return stripped
	}
	return h
}
