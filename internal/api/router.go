package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweet-shop/sweet-shop-api/internal/api/handler"
	"github.com/sweet-shop/sweet-shop-api/internal/api/middleware"
	"github.com/sweet-shop/sweet-shop-api/internal/core/service"
	"github.com/sweet-shop/sweet-shop-api/internal/core/token"
	mongodb "github.com/sweet-shop/sweet-shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sweet-shop/sweet-shop-api/internal/infrastructure/db/redis"
	"github.com/sweet-shop/sweet-shop-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The per-request pipeline is fixed: CORS → auth filter (token → identity) →
// authorization policy → handler.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// Auth filter must precede the policy; the policy terminates requests,
	// the filter never does.
	tokens := token.NewService(cfg.JWTSecret)
	e.Use(middleware.Auth(tokens))
	e.Use(middleware.Authorize(middleware.NewPolicy(AccessRules()...)))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, tokens, cfg.TokenTTL, log)
	authHandler := handler.NewAuthHandler(authService)

	sweetRepo := mongodb.NewSweetRepository(db)
	catalogCache := redisdb.NewCatalogCache(rdb, log)
	sweetService := service.NewSweetService(sweetRepo, catalogCache, log)
	sweetHandler := handler.NewSweetHandler(sweetService)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/sweets", sweetHandler.List)
	apiGroup.GET("/sweets/search", sweetHandler.Search)
	apiGroup.GET("/sweets/:id", sweetHandler.Get)
	apiGroup.POST("/sweets", sweetHandler.Create)
	apiGroup.PUT("/sweets/:id", sweetHandler.Update)
	apiGroup.DELETE("/sweets/:id", sweetHandler.Delete)
	apiGroup.POST("/sweets/:id/purchase", sweetHandler.Purchase)
	apiGroup.POST("/sweets/:id/restock", sweetHandler.Restock)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
