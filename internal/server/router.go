package server

import (
	"net/http"

	_ "septic-canary/docs"
	"septic-canary/internal/config"
	"septic-canary/internal/handler"
	"septic-canary/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the gin engine serving the public API and operational endpoints.
// limiter may be nil to disable inbound throttling.
func NewRouter(cfg *config.Config, propertyHandler *handler.PropertyHandler, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	if cfg.InboundAuthEnabled() {
		api.Use(middleware.BasicAuth(cfg.APIUsername, cfg.APIPassword))
	}
	{
		api.GET("/property/details", propertyHandler.GetPropertyDetails)
	}

	return r
}
