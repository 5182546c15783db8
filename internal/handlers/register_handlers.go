package handlers

import (
	"net/http"
	"time"

	"github.com/campbellchri/clara-backend/cmd/docs"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/middleware"
	"github.com/campbellchri/clara-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

type routeOptions struct {
	rateLimiter      *limiter.Limiter
	idempotencyStore middleware.IdempotencyStore
	idempotencyTTL   time.Duration
}

// RouteOption configures optional route middleware
type RouteOption func(*routeOptions)

// WithRateLimiter limits every /api/v1 request
func WithRateLimiter(l *limiter.Limiter) RouteOption {
	return func(o *routeOptions) {
		o.rateLimiter = l
	}
}

// WithIdempotencyStore enables Idempotency-Key replay on claim preparation
func WithIdempotencyStore(store middleware.IdempotencyStore, ttl time.Duration) RouteOption {
	return func(o *routeOptions) {
		o.idempotencyStore = store
		o.idempotencyTTL = ttl
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts ...RouteOption,
) {
	options := routeOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, options)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	options routeOptions,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if options.rateLimiter != nil {
		v1.Use(middleware.RateLimit(options.rateLimiter))
	}

	// Everything below a practice is tenant scoped
	practice := v1.Group("/practices/:practice_id", middleware.PracticeScope())

	var prepareMiddleware []gin.HandlerFunc
	if options.idempotencyStore != nil {
		prepareMiddleware = append(prepareMiddleware, middleware.Idempotency(options.idempotencyStore, options.idempotencyTTL))
	}
	registerClaimRoutes(practice, service.Claims, prepareMiddleware...)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
