// Package mockapi is an in-memory implementation of the delivery HTTP
// API. It backs local development and acts as the remote side in tests.
package mockapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wbonfim/DeliveryApp/internal/handlers"
	"github.com/wbonfim/DeliveryApp/internal/middleware"
	"github.com/wbonfim/DeliveryApp/internal/services"
	"github.com/wbonfim/DeliveryApp/pkg/auth"
)

const (
	DefaultPrefix = "/api"
	ServiceName   = "delivery-api"
)

type Config struct {
	// Prefix is the route group every API endpoint lives under.
	Prefix      string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	// RateLimit is requests per second per client IP; zero disables it.
	RateLimit float64
	RateBurst int
	// Publisher receives order events; nil drops them.
	Publisher services.EventPublisher
	Logger    zerolog.Logger
}

// New seeds a fresh dataset and returns the router serving it.
func New(ctx context.Context, cfg Config) (*gin.Engine, error) {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	r := newRepos()
	if err := seed(ctx, r); err != nil {
		return nil, err
	}

	jwtManager := auth.NewJWTManager(secret, cfg.TokenTTL)

	// Initialize services
	authService := services.NewAuthService(r.users, jwtManager)
	restaurantService := services.NewRestaurantService(r.restaurants, r.products, r.categories)
	cartService := services.NewCartService(r.carts, r.products)
	orderService := services.NewOrderService(r.orders, r.restaurants, r.reviews, cartService, cfg.Publisher, cfg.Logger)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, r.users)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(cfg.Logger))
	router.Use(middleware.RecoveryMiddleware(cfg.Logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	if cfg.RateLimit > 0 {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Handler())
	}

	health := handlers.HealthHandler(ServiceName)
	router.GET("/health", health)

	api := router.Group(prefix)
	api.GET("/health", health)

	authHandler.RegisterRoutes(api, authMiddleware)
	restaurantHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api, authMiddleware)
	orderHandler.RegisterRoutes(api, authMiddleware)

	return router, nil
}
