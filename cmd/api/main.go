package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/checkitsa/app-checkit/internal/config"
	"github.com/checkitsa/app-checkit/internal/handlers"
	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/checkitsa/app-checkit/internal/observability"
	"github.com/checkitsa/app-checkit/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/checkitsa/app-checkit/docs"
)

// @title           CheckItSA API
// @version         1.0
// @description     Verification API for South African identity details. Validates South African ID numbers with the Luhn checksum and decodes date of birth, gender and citizenship, parses phone numbers and scores email addresses for scam risk.

// @contact.name   API Support
// @contact.email  support@checkitsa.co.za

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /v1

// @tag.name verify
// @tag.description Identity detail verification

// @tag.name checks
// @tag.description Check history

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	if err := config.InitMongoDB(); err != nil {
		logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	config.InitRedis()

	// Check history workers
	var history handlers.CheckHistory
	var historyService *services.CheckHistoryService
	if config.AppConfig.HistoryEnabled {
		store := services.NewMongoCheckStore(config.MongoDB.Collection(config.AppConfig.ChecksCollection))
		historyService = services.NewCheckHistoryService(store, services.HistoryOptions{
			Workers:       config.AppConfig.HistoryWorkerCount,
			BufferSize:    config.AppConfig.HistoryBufferSize,
			BatchSize:     config.AppConfig.HistoryBatchSize,
			FlushInterval: config.AppConfig.HistoryFlushInterval,
		}, logging.Logger)
		historyService.Start()
		history = historyService
	}

	// Rate limiter with local fallback buckets swept in the background
	limiter := services.NewRedisRateLimiter(config.Redis,
		config.AppConfig.RateLimitRequests,
		config.AppConfig.RateLimitWindow,
		logging.Logger)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	limiter.Fallback().StartCleanup(cleanupCtx, time.Minute, 2*config.AppConfig.RateLimitWindow)

	emailRisk := services.NewEmailRiskService(nil, config.AppConfig.DNSLookupTimeout, logging.Logger)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := newRouter(routerDeps{
		history: history,
		limiter: limiter,
		email:   emailRisk,
		health: map[string]handlers.HealthCheckFunc{
			"mongodb": func(ctx context.Context) error {
				return config.MongoDB.Client().Ping(ctx, nil)
			},
			"redis": func(ctx context.Context) error {
				return config.Redis.Ping(ctx).Err()
			},
		},
		logger: logging.Logger,
	})

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	if historyService != nil {
		if err := historyService.Stop(ctx); err != nil {
			logging.Logger.Error("check history did not drain", zap.Error(err))
		}
	}
	config.DisconnectMongoDB(ctx)

	logging.Logger.Info("server exited gracefully")
}
