package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

const usageArchiveBatchSize = 1000

// BillingWorker runs the periodic billing chores: expiring trials that were
// never paid, converting paid trials into regular subscriptions and archiving
// old usage logs to S3 before pruning them.
type BillingWorker struct {
	repo         repository.Repository
	entitlements *service.EntitlementService
	s3Client     *s3.Client
	s3Config     *config.S3Config
	config       *config.Config
	logger       *logger.Logger
	interval     time.Duration
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewBillingWorker(
	repo repository.Repository,
	entitlements *service.EntitlementService,
	s3Client *s3.Client,
	s3Config *config.S3Config,
	cfg *config.Config,
	logger *logger.Logger,
	interval time.Duration,
) *BillingWorker {
	return &BillingWorker{
		repo:         repo,
		entitlements: entitlements,
		s3Client:     s3Client,
		s3Config:     s3Config,
		config:       cfg,
		logger:       logger,
		interval:     interval,
		shutdownChan: make(chan struct{}),
	}
}

func (w *BillingWorker) Start() {
	w.logger.Info("Starting billing worker...")
	w.waitGroup.Add(1)
	go w.run()
}

func (w *BillingWorker) Stop() {
	w.logger.Info("Stopping billing worker...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("Billing worker stopped")
}

func (w *BillingWorker) run() {
	defer w.waitGroup.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Info("Billing worker shutting down")
			return
		case <-ticker.C:
			ctx := context.Background()
			if err := w.processExpiredTrials(ctx); err != nil {
				w.logger.Errorf("Failed to process expired trials: %v", err)
			}
			if err := w.archiveUsageLogs(ctx); err != nil {
				w.logger.Errorf("Failed to archive usage logs: %v", err)
			}
		}
	}
}

// processExpiredTrials walks subscriptions whose trial window has closed. A
// paid order converts the trial into a regular subscription; without one the
// subscription is deactivated.
func (w *BillingWorker) processExpiredTrials(ctx context.Context) error {
	now := time.Now()

	expired, err := w.repo.Subscription().ListExpiredTrials(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list expired trials: %w", err)
	}

	for i := range expired {
		sub := &expired[i]

		order, err := w.repo.PaymentOrder().LatestPaidForTenant(ctx, sub.TenantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			w.logger.Errorf("Failed to look up payment for tenant %s: %v", sub.TenantID, err)
			continue
		}

		if order == nil || order.PaidAt == nil {
			sub.IsActive = false
			expiresAt := now
			sub.ExpiresAt = &expiresAt
			sub.IsTrial = false
			if err := w.repo.Subscription().Save(ctx, sub); err != nil {
				w.logger.Errorf("Failed to deactivate expired trial for tenant %s: %v", sub.TenantID, err)
				continue
			}
			w.logger.Infof("Trial expired without payment, subscription deactivated for tenant %s", sub.TenantID)
			continue
		}

		sub.IsTrial = false
		sub.LastBilledAt = order.PaidAt
		nextBilling := order.PaidAt.AddDate(0, 1, 0)
		sub.NextBillingDate = &nextBilling
		if err := w.repo.Subscription().Save(ctx, sub); err != nil {
			w.logger.Errorf("Failed to convert paid trial for tenant %s: %v", sub.TenantID, err)
			continue
		}

		if _, err := w.entitlements.SyncTenantFeatures(ctx, sub); err != nil {
			w.logger.Errorf("Entitlement sync after trial conversion failed for tenant %s: %v", sub.TenantID, err)
			continue
		}
		w.logger.Infof("Trial converted to paid subscription for tenant %s", sub.TenantID)
	}

	return nil
}

// archiveUsageLogs writes usage rows past the retention window to S3 as one
// JSON object per tenant per run, then deletes the archived rows. Rows are
// deleted only after a successful upload.
func (w *BillingWorker) archiveUsageLogs(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.config.UsageRetentionDays)

	logs, err := w.repo.UsageLog().ListBefore(ctx, cutoff, usageArchiveBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list usage logs: %w", err)
	}
	if len(logs) == 0 {
		return nil
	}

	byTenant := make(map[string][]domain.UsageLog)
	for _, l := range logs {
		byTenant[l.TenantID] = append(byTenant[l.TenantID], l)
	}

	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	var archivedIDs []string

	for tenantID, tenantLogs := range byTenant {
		body, err := json.Marshal(tenantLogs)
		if err != nil {
			w.logger.Errorf("Failed to marshal usage logs for tenant %s: %v", tenantID, err)
			continue
		}

		key := fmt.Sprintf("usage/%s/%s.json", tenantID, stamp)
		_, err = w.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(w.s3Config.BucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			w.logger.Errorf("Failed to upload usage archive for tenant %s: %v", tenantID, err)
			continue
		}

		for i := range tenantLogs {
			archivedIDs = append(archivedIDs, tenantLogs[i].ID)
		}
		w.logger.Infof("Archived %d usage logs for tenant %s to s3://%s/%s",
			len(tenantLogs), tenantID, w.s3Config.BucketName, key)
	}

	if len(archivedIDs) == 0 {
		return nil
	}

	deleted, err := w.repo.UsageLog().DeleteByIDs(ctx, archivedIDs)
	if err != nil {
		return fmt.Errorf("failed to prune archived usage logs: %w", err)
	}
	w.logger.Infof("Pruned %d archived usage logs", deleted)
	return nil
}
