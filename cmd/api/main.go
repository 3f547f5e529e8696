package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/echodesk/echodesk-api/internal/api"
	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/middleware"
	"github.com/echodesk/echodesk-api/internal/repository/postgres"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/service/queue"
	"github.com/echodesk/echodesk-api/internal/tenancy"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	appLogger.Info("Database connections established - writer and reader connected")

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	repo := postgres.NewRepository(dbConnections)

	// Tenancy: hostname resolution and schema binding
	resolver := tenancy.NewResolver(repo.Tenant(), redisClient, cfg, appLogger)
	switcher := tenancy.NewSchemaSwitcher(dbConnections.Writer, appLogger)

	// Initialize services
	entitlementService := service.NewEntitlementService(repo, appLogger)
	tenantService := service.NewTenantService(repo, entitlementService, resolver, cfg, appLogger)
	subscriptionService := service.NewSubscriptionService(repo, entitlementService, sqsService, appLogger)
	catalogService := service.NewCatalogService(repo)
	securityService := service.NewSecurityService(repo, appLogger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	tenantMiddleware := middleware.NewTenantMiddleware(resolver, switcher, appLogger)
	whitelistMiddleware := middleware.NewIPWhitelistMiddleware(securityService, authMiddleware, appLogger)
	entitlementMiddleware := middleware.NewEntitlementMiddleware(subscriptionService, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize server
	server := api.NewServer(
		tenantService,
		subscriptionService,
		entitlementService,
		catalogService,
		securityService,
		tenantMiddleware,
		whitelistMiddleware,
		entitlementMiddleware,
		authMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
	)

	// Initialize router
	router := gin.Default()
	server.SetupRoutes(router)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
