package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuth blocks requests that carry no resolved identity. When a
// session cookie was sent but Identity could not resolve it (bad signature,
// or the user has since been deleted), the stale cookie is cleared before
// rejecting, so a session never outlives its user.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) != nil {
				return next(c)
			}

			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				ClearSessionCookie(c)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
	}
}
