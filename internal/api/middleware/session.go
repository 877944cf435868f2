package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sessionlab/identity-service/internal/api/handler"
	"github.com/sessionlab/identity-service/internal/api/metrics"
	"github.com/sessionlab/identity-service/internal/core/domain"
)

// SessionResolver classifies the request's credential cookies.
type SessionResolver interface {
	Resolve(accessCookie, refreshCookie string) domain.Session
}

// Session resolves the credential cookies into a session state and
// injects it into the context on every request. It never rejects: codec
// failures degrade to the unauthenticated states, so downstream guards
// decide what each route requires.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := resolver.Resolve(
				cookieValue(c, handler.AccessCookie),
				cookieValue(c, handler.RefreshCookie),
			)
			metrics.SessionsResolvedTotal.WithLabelValues(string(session.State)).Inc()
			c.Set("session", session)
			return next(c)
		}
	}
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
