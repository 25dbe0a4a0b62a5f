package main

import (
	"github.com/checkitsa/app-checkit/internal/handlers"
	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/middleware"
	"github.com/checkitsa/app-checkit/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// routerDeps are the services the HTTP layer is built from. history may be
// nil when check history is disabled.
type routerDeps struct {
	history handlers.CheckHistory
	limiter services.RateLimiter
	email   handlers.EmailAssessor
	health  map[string]handlers.HealthCheckFunc
	logger  *logging.SafeLogger
}

func newRouter(deps routerDeps) *gin.Engine {
	idHandlers := handlers.NewIDHandlers(deps.history, deps.logger)
	phoneHandlers := handlers.NewPhoneHandlers(deps.history, deps.logger)
	emailHandlers := handlers.NewEmailHandlers(deps.email, deps.history, deps.logger)
	checksHandlers := handlers.NewChecksHandlers(deps.history, deps.logger)
	healthHandlers := handlers.NewHealthHandlers(deps.health, deps.logger)

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthHandlers.HealthCheck)

		verify := v1.Group("/verify", middleware.RateLimit(deps.limiter))
		{
			verify.POST("/id", idHandlers.VerifyID)
			verify.POST("/phone", phoneHandlers.CheckPhone)
			verify.POST("/email", emailHandlers.CheckEmail)
		}

		v1.GET("/checks/summary", checksHandlers.GetSummary)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
