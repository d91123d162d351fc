package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/gestionale/gestionale/internal/api/handlers"
	"github.com/gestionale/gestionale/internal/api/middleware"
	"github.com/gestionale/gestionale/internal/core/identity"
)

type Router struct {
	engine           *gin.Engine
	authMiddleware   *middleware.AuthMiddleware
	authHandler      *handlers.AuthHandler
	registryHandler  *handlers.RegistryHandler
	recordHandler    *handlers.RecordHandler
	analyticsHandler *handlers.AnalyticsHandler
	logger           *slog.Logger
}

func NewRouter(
	identityService *identity.Service,
	authHandler *handlers.AuthHandler,
	registryHandler *handlers.RegistryHandler,
	recordHandler *handlers.RecordHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		authMiddleware:   middleware.NewAuthMiddleware(identityService),
		authHandler:      authHandler,
		registryHandler:  registryHandler,
		recordHandler:    recordHandler,
		analyticsHandler: analyticsHandler,
		logger:           logger,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", r.authHandler.Register)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.GET("/auth/me", r.authHandler.Me)

		// Record types (read-only; the registry is fixed at startup)
		types := protected.Group("/types")
		{
			types.GET("", r.registryHandler.List)
			types.GET("/:slug", r.registryHandler.Get)
		}

		// Records
		records := protected.Group("/records")
		{
			records.GET("/:typeSlug", r.recordHandler.List)
			records.POST("/:typeSlug", r.recordHandler.Create)
			records.GET("/:typeSlug/:id", r.recordHandler.Get)
			records.PUT("/:typeSlug/:id", r.recordHandler.Update)
			records.DELETE("/:typeSlug/:id", r.recordHandler.Delete)
		}

		// Analytics
		protected.GET("/analytics/financial", r.analyticsHandler.Financial)
	}
}
