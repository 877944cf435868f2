package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sessionlab/identity-service/internal/core/domain"
)

// RequireAuth rejects requests whose session is not authenticated. A
// pending-refresh session is rejected too: the client must hit the
// refresh endpoint before retrying.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := c.Get("session").(domain.Session)
			if !ok || !session.Authenticated() {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
