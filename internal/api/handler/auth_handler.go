package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sessionlab/identity-service/internal/api/metrics"
	"github.com/sessionlab/identity-service/internal/core/domain"
	"github.com/sessionlab/identity-service/internal/core/ports"
)

// LoginThrottle guards the login endpoint against brute-force attempts.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}

type AuthHandler struct {
	identity ports.IdentityService
	cookies  *CookieWriter
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewAuthHandler(identity ports.IdentityService, cookies *CookieWriter, throttle LoginThrottle, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, cookies: cookies, throttle: throttle, log: log}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.identity.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, registerResponse{ID: id, Message: "user created"})
}

// Login authenticates a user and sets the credential cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.LoginDuration)
	defer timer.ObserveDuration()

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if allowed := h.allowAttempt(ctx, req.Username); !allowed {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
	}

	user, access, refresh, err := h.identity.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	if err := h.throttle.Reset(ctx, req.Username); err != nil {
		h.log.Warn().Err(err).Msg("throttle reset failed")
	}

	h.cookies.SetAccess(c, access)
	h.cookies.SetRefresh(c, refresh)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{User: user, Message: "login successful"})
}

// Refresh exchanges the refresh cookie for a new access token.
//
// @Summary      Renew the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	refresh := readCookie(c, RefreshCookie)
	if refresh == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token not found")
	}

	user, access, err := h.identity.Refresh(c.Request().Context(), refresh)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(refreshResult(err)).Inc()
		return err
	}

	h.cookies.SetAccess(c, access)

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{User: user, Message: "token renewed"})
}

// Logout revokes the presented refresh token and clears both cookies.
// Revocation failures are logged and swallowed: failing to clean up a
// token must not block the user from leaving.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if refresh := readCookie(c, RefreshCookie); refresh != "" {
		if err := h.identity.Revoke(c.Request().Context(), refresh); err != nil {
			h.log.Warn().Err(err).Msg("refresh token revocation failed")
		} else {
			metrics.RevocationsTotal.Inc()
		}
	}

	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, sessionResponse{Message: "logout successful"})
}

// Me returns the identity of the authenticated session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      403  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, ok := c.Get("session").(domain.Session)
	if !ok || !session.Authenticated() {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	return c.JSON(http.StatusOK, sessionResponse{
		User: &domain.PublicUser{ID: session.User.UserID, Username: session.User.Username},
	})
}

// allowAttempt consults the throttle, failing open when Redis is down so
// an infrastructure outage cannot lock every user out.
func (h *AuthHandler) allowAttempt(ctx context.Context, username string) bool {
	allowed, err := h.throttle.Allow(ctx, username)
	if err != nil {
		h.log.Warn().Err(err).Msg("login throttle unavailable")
		return true
	}
	return allowed
}

func loginResult(err error) string {
	switch {
	case domain.IsValidation(err), err == domain.ErrUserNotFound, err == domain.ErrInvalidPassword:
		return "invalid_credentials"
	default:
		return "error"
	}
}

func refreshResult(err error) string {
	switch err {
	case domain.ErrInvalidRefreshToken:
		return "invalid"
	case domain.ErrRefreshTokenExpired:
		return "expired"
	default:
		return "error"
	}
}
