package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/service/queue"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

// SyncWorker drains the entitlement sync queue. Messages arrive when a
// synchronous reconciliation failed after a subscription change; the worker
// retries until the sync succeeds, deleting the message only on success so
// SQS redelivery provides the retry loop.
type SyncWorker struct {
	sqsService    *queue.SQSService
	subscriptions *service.SubscriptionService
	logger        *logger.Logger
	workerCount   int
	pollInterval  time.Duration
	maxMessages   int32
	waitTime      int32
	shutdownChan  chan struct{}
	waitGroup     sync.WaitGroup
}

func NewSyncWorker(
	sqsService *queue.SQSService,
	subscriptions *service.SubscriptionService,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *SyncWorker {
	return &SyncWorker{
		sqsService:    sqsService,
		subscriptions: subscriptions,
		logger:        logger,
		workerCount:   workerCount,
		pollInterval:  pollInterval,
		maxMessages:   10, // Process up to 10 messages at a time
		waitTime:      20, // Long polling: wait up to 20 seconds for messages
		shutdownChan:  make(chan struct{}),
	}
}

func (w *SyncWorker) Start() {
	w.logger.Info("Starting sync workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *SyncWorker) Stop() {
	w.logger.Info("Stopping sync workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All sync workers stopped")
}

func (w *SyncWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Sync worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Sync worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(context.Background()); err != nil {
				w.logger.Errorf("Sync worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

func (w *SyncWorker) processMessages(ctx context.Context) error {
	syncQueueURL := config.DefaultSQSConfig().SyncQueueURL

	messages, err := w.sqsService.ReceiveMessages(ctx, syncQueueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessage(ctx, msg.Message); err != nil {
			w.logger.Errorf("Failed to process message: %v", err)
			continue
		}

		// Only delete the message if processing was successful
		if err := w.sqsService.DeleteMessage(ctx, syncQueueURL, msg.ReceiptHandle); err != nil {
			w.logger.Errorf("Failed to delete message: %v", err)
		}
	}

	return nil
}

func (w *SyncWorker) processMessage(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypeEntitlementSync {
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}

	w.logger.Infof("Retrying entitlement sync for tenant %s (reason: %s)", msg.TenantID, msg.Reason)

	result, err := w.subscriptions.ResyncTenant(ctx, msg.TenantID)
	if err != nil {
		// A vanished subscription means there is nothing left to sync.
		if errors.Is(err, service.ErrNoSubscription) {
			w.logger.Warnf("Dropping sync message for tenant %s: subscription no longer exists", msg.TenantID)
			return nil
		}
		return err
	}

	w.logger.Infof("Entitlement sync for tenant %s complete: %d enabled, %d disabled, %d permissions granted",
		msg.TenantID, len(result.EnabledFeatures), len(result.DisabledFeatures), result.PermissionsGranted)
	return nil
}
