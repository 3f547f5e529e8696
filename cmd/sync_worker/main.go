package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/repository/postgres"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/service/queue"
	"github.com/echodesk/echodesk-api/internal/worker"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	appLogger.Info("Database connections established for sync worker")

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	appLogger.Info("SQS connection established for sync worker")

	repo := postgres.NewRepository(dbConnections)
	entitlementService := service.NewEntitlementService(repo, appLogger)
	subscriptionService := service.NewSubscriptionService(repo, entitlementService, sqsService, appLogger)

	syncWorker := worker.NewSyncWorker(
		sqsService,
		subscriptionService,
		appLogger,
		1,             // worker goroutines
		5*time.Second, // Poll every 5 seconds
	)

	syncWorker.Start()
	appLogger.Info("Sync worker started")

	// Wait for interrupt signal to gracefully shutdown the worker
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	syncWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
