package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireApex blocks requests whose Host header is not the platform's own
// apex host. Account-management routes sit behind this gate so a tenant's
// custom domain can never shadow the management UI. The match ignores case
// and port.
func RequireApex(apexHost string) echo.MiddlewareFunc {
	apex := hostOnly(apexHost)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if hostOnly(c.Request().Host) != apex {
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			}
			return next(c)
		}
	}
}
