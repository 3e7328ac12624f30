package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bikram73/Netflix-Clone/internal/infra/config"
	"github.com/bikram73/Netflix-Clone/internal/transport/http/handlers"
	"github.com/bikram73/Netflix-Clone/internal/transport/http/middleware"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth    handlers.AuthService
	Catalog handlers.CatalogService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Database DatabaseChecker
	Metrics  *middleware.HTTPMetrics
	Gatherer prometheus.Gatherer
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Tracing())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(deps.Metrics.Handler())
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))

	healthOptions := []handlers.HealthOption{
		handlers.WithKeyConfigured(deps.Config.Metadata.KeyConfigured()),
	}
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("", healthHandler.APIStatus)
	registerDomainRoutes(api, deps.Services)

	// Aliases without the /api prefix kept for clients of the previous backend.
	r.GET("/", healthHandler.APIStatus)
	registerDomainRoutes(r, deps.Services)

	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.NotFound)

	return r
}

func registerDomainRoutes(r gin.IRoutes, services ServiceSet) {
	if services.Auth != nil {
		handlers.NewAuthHandler(services.Auth).RegisterRoutes(r)
	}
	if services.Catalog != nil {
		handlers.NewCatalogHandler(services.Catalog).RegisterRoutes(r)
	}
}
