package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/handler"
	"vibelink/internal/microservices/http-api/middleware"
	"vibelink/internal/microservices/http-api/service"
	"vibelink/internal/observability"
)

type RouterConfig struct {
	Logger         *logger.Logger
	Tokens         service.TokenValidator
	CORSOrigins    []string
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
	ServeMetrics   bool

	AuthHandler           *handler.AuthHandler
	UserHandler           *handler.UserHandler
	MediaHandler          *handler.MediaHandler
	RatingHandler         *handler.RatingHandler
	LinkHandler           *handler.LinkHandler
	RecommendationHandler *handler.RecommendationHandler
	ActivityHandler       *handler.ActivityHandler
	CatalogHandler        *handler.CatalogHandler
	HealthHandler         *handler.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	handler.ConfigureBinding()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(observability.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthz", cfg.HealthHandler.Check)
	if cfg.ServeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	}

	public := api.Group("")
	public.Use(middleware.OptionalAuth(cfg.Tokens))

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.Tokens))

	cfg.AuthHandler.RegisterRoutes(public)
	cfg.UserHandler.RegisterRoutes(protected)
	cfg.MediaHandler.RegisterRoutes(public, protected)
	cfg.RatingHandler.RegisterRoutes(public, protected)
	cfg.LinkHandler.RegisterRoutes(public, protected)
	cfg.RecommendationHandler.RegisterRoutes(public, protected)
	cfg.ActivityHandler.RegisterRoutes(public)
	cfg.CatalogHandler.RegisterRoutes(public, protected)

	return router
}
