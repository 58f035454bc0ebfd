package router

import (
	"github.com/gin-gonic/gin"

	"exportbridge/internal/config"
	"exportbridge/internal/handler"
	"exportbridge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authCfg config.AuthConfig,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	// Protected routes - require Basic Auth
	protected := r.Group("")
	protected.Use(middleware.BasicAuth(authCfg))
	protected.GET("/export", exportH.Export)

	return r
}
