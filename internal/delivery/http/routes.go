package http

import (
	"github.com/gin-gonic/gin"
	"github.com/optionmap/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware; request context first so later middleware logs with the request id
	router.Use(RequestContextMiddleware(logger))
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/mapping", BodyLimitMiddleware(cfg.Server.MaxBodyBytes), handler.TransformOptions)
	}

	return router
}
