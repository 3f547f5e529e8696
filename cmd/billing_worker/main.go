package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/repository/postgres"
	"github.com/echodesk/echodesk-api/internal/service"
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

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	appLogger.Info("Database connections established for billing worker")

	// Initialize S3 for usage log archival
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}

	appLogger.Info("S3 connection established for billing worker")

	repo := postgres.NewRepository(dbConnections)
	entitlementService := service.NewEntitlementService(repo, appLogger)

	billingWorker := worker.NewBillingWorker(
		repo,
		entitlementService,
		s3Client,
		s3Config,
		cfg,
		appLogger,
		time.Hour, // Run billing chores hourly
	)

	billingWorker.Start()
	appLogger.Info("Billing worker started")

	// Wait for interrupt signal to gracefully shutdown the worker
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	billingWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
