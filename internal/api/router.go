package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sessionlab/identity-service/internal/api/handler"
	"github.com/sessionlab/identity-service/internal/api/middleware"
	"github.com/sessionlab/identity-service/internal/core/service"
	"github.com/sessionlab/identity-service/internal/core/token"
	mongostore "github.com/sessionlab/identity-service/internal/infrastructure/db/mongo"
	redisstore "github.com/sessionlab/identity-service/internal/infrastructure/db/redis"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour

	loginMaxAttempts = 10
	loginWindow      = time.Minute
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, secureCookies bool, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	codec := token.NewJWTCodec(jwtSecret)
	users := mongostore.NewUserRepository(db)
	tokens := mongostore.NewRefreshTokenRepository(db)
	identity := service.NewIdentityService(users, tokens, codec, accessTokenTTL, refreshTokenTTL)
	resolver := service.NewSessionResolver(codec)
	cookies := handler.NewCookieWriter(secureCookies)
	throttle := redisstore.NewLoginThrottle(rdb, loginMaxAttempts, loginWindow)
	authHandler := handler.NewAuthHandler(identity, cookies, throttle, log)

	// Session resolution runs on every request; routes that need an
	// authenticated caller add the RequireAuth guard on top.
	e.Use(middleware.Session(resolver))

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh-token", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me, middleware.RequireAuth())

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
