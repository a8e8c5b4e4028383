package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

// Identity attaches the authenticated user to the request context when a
// valid session cookie is present. It never blocks: requests without a
// cookie, or with a token that no longer verifies, continue as anonymous.
func Identity(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := auth.Identify(c.Request().Context(), cookie.Value)
			if err != nil {
				return next(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Identity, or nil for anonymous
// requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
