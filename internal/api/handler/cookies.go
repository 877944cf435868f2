package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// AccessCookie carries the signed access token.
	AccessCookie = "access_token"
	// RefreshCookie carries the opaque refresh secret, never a store key.
	RefreshCookie = "refresh_token"

	accessCookieTTL  = 15 * time.Minute
	refreshCookieTTL = 30 * 24 * time.Hour
)

// CookieWriter stamps credential cookies with the flags the deployment
// requires: HttpOnly and SameSite=Strict always, Secure in production.
type CookieWriter struct {
	secure bool
}

func NewCookieWriter(secure bool) *CookieWriter {
	return &CookieWriter{secure: secure}
}

// SetAccess attaches the access-token cookie with a max-age matching the
// token's TTL.
func (w *CookieWriter) SetAccess(c echo.Context, token string) {
	c.SetCookie(w.cookie(AccessCookie, token, accessCookieTTL))
}

// SetRefresh attaches the refresh-token cookie.
func (w *CookieWriter) SetRefresh(c echo.Context, token string) {
	c.SetCookie(w.cookie(RefreshCookie, token, refreshCookieTTL))
}

// Clear expires both credential cookies.
func (w *CookieWriter) Clear(c echo.Context) {
	c.SetCookie(w.cookie(AccessCookie, "", -time.Second))
	c.SetCookie(w.cookie(RefreshCookie, "", -time.Second))
}

func (w *CookieWriter) cookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	} else {
		cookie.MaxAge = -1
	}
	return cookie
}

// readCookie returns the named cookie's value, or "" when absent.
func readCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}
