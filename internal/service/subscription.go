package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/internal/utils"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

//go:generate mockery --name SQSService --output ../mocks
type SQSService interface {
	SendSyncMessage(ctx context.Context, tenantID, subscriptionID, reason string) error
}

// SubscriptionService answers the two questions the rest of the application
// asks constantly: what does this tenant pay for, and may they use feature X.
type SubscriptionService struct {
	repo         repository.Repository
	entitlements *EntitlementService
	sqsSvc       SQSService
	logger       *logger.Logger
}

func NewSubscriptionService(repo repository.Repository, entitlements *EntitlementService, sqsSvc SQSService, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:         repo,
		entitlements: entitlements,
		sqsSvc:       sqsSvc,
		logger:       log,
	}
}

// CurrentSubscription returns the subscription of the tenant bound to this
// request, regardless of its active flag. Requests on the public schema have
// no subscription: both return values are nil.
func (s *SubscriptionService) CurrentSubscription(ctx context.Context) (*domain.TenantSubscription, error) {
	tenant, err := utils.GetTenantFromContext(ctx)
	if err != nil || tenant.IsPublic() {
		return nil, nil
	}

	sub, err := s.repo.Subscription().GetByTenantID(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) activeSubscription(ctx context.Context) (*domain.TenantSubscription, error) {
	sub, err := s.CurrentSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.IsActive {
		return nil, nil
	}
	return sub, nil
}

// HasFeature is the dual-path capability check. Feature-based subscriptions
// consult the selected feature set; package subscriptions consult the legacy
// boolean flags. No subscription, an inactive one, or an unknown legacy key
// all answer false.
func (s *SubscriptionService) HasFeature(ctx context.Context, key domain.FeatureKey) (bool, error) {
	sub, err := s.activeSubscription(ctx)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}

	if sub.IsFeatureBased() {
		return sub.HasSelectedFeature(key), nil
	}

	if sub.Package == nil {
		return false, nil
	}
	enabled, ok := sub.Package.LegacyFeature(key)
	if !ok {
		s.logger.Warnf("feature check for unknown legacy key %q", key)
		return false, nil
	}
	return enabled, nil
}

// CheckLimit reports usage against one of the subscription's limits for the
// tenant bound to this request.
func (s *SubscriptionService) CheckLimit(ctx context.Context, kind domain.LimitKind) (*domain.LimitStatus, error) {
	sub, err := s.activeSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}
	return limitStatus(sub, kind)
}

func limitStatus(sub *domain.TenantSubscription, kind domain.LimitKind) (*domain.LimitStatus, error) {
	status := &domain.LimitStatus{Kind: kind}

	switch kind {
	case domain.LimitUsers:
		status.Current = float64(sub.CurrentUsers)
		if l := sub.UserLimit(); l != nil {
			limit := float64(*l)
			status.Limit = &limit
		}
		status.WithinLimit = sub.CanAddUser()

	case domain.LimitWhatsApp:
		status.Current = float64(sub.WhatsAppMessagesUsed)
		if sub.IsFeatureBased() {
			limit := float64(domain.DefaultWhatsAppMessageLimit)
			status.Limit = &limit
		} else if sub.Package != nil && sub.Package.MaxWhatsAppMessages > 0 {
			limit := float64(sub.Package.MaxWhatsAppMessages)
			status.Limit = &limit
		}
		status.WithinLimit = status.Limit == nil || status.Current < *status.Limit

	case domain.LimitStorage:
		status.Current = sub.StorageUsedGB
		if sub.IsFeatureBased() {
			limit := float64(domain.DefaultStorageLimitGB)
			status.Limit = &limit
		} else if sub.Package != nil && sub.Package.MaxStorageGB > 0 {
			limit := float64(sub.Package.MaxStorageGB)
			status.Limit = &limit
		}
		status.WithinLimit = status.Limit == nil || status.Current < *status.Limit

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLimitKind, kind)
	}

	if status.Limit != nil && *status.Limit > 0 {
		status.UsagePercent = math.Round(status.Current/(*status.Limit)*10000) / 100
	}
	return status, nil
}

// Info assembles the billing summary for the tenant bound to this request.
func (s *SubscriptionService) Info(ctx context.Context) (*dto.SubscriptionInfoResponse, error) {
	sub, err := s.CurrentSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoSubscription
	}
	return subscriptionInfo(sub), nil
}

func subscriptionInfo(sub *domain.TenantSubscription) *dto.SubscriptionInfoResponse {
	resp := &dto.SubscriptionInfoResponse{
		ID:              sub.ID,
		Model:           "package",
		IsActive:        sub.IsActive,
		IsTrial:         sub.IsTrial,
		TrialEndsAt:     sub.TrialEndsAt,
		AgentCount:      sub.AgentCount,
		MonthlyCost:     sub.MonthlyCost(),
		NextBillingDate: sub.NextBillingDate,
	}

	if sub.IsFeatureBased() {
		resp.Model = "features"
		resp.SelectedFeatures = make([]dto.FeatureResponse, len(sub.SelectedFeatures))
		for i := range sub.SelectedFeatures {
			resp.SelectedFeatures[i] = *dto.FromFeature(&sub.SelectedFeatures[i])
		}
	} else if sub.Package != nil {
		resp.Package = dto.FromPackage(sub.Package)
	}

	for _, kind := range []domain.LimitKind{domain.LimitUsers, domain.LimitWhatsApp, domain.LimitStorage} {
		if status, err := limitStatus(sub, kind); err == nil {
			resp.Limits = append(resp.Limits, *status)
		}
	}
	return resp
}

// UpdateSubscription switches the tenant between entitlement models or
// adjusts the selected feature set, then reconciles entitlements. A failed
// reconciliation is surfaced to the caller and queued for retry, never
// silently dropped.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionInfoResponse, error) {
	tenant, err := utils.GetTenantFromContext(ctx)
	if err != nil || tenant.IsPublic() {
		return nil, ErrNoSubscription
	}

	sub, err := s.repo.Subscription().GetByTenantID(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSubscription
		}
		return nil, err
	}

	wantsPackage := req.PackageName != nil && *req.PackageName != ""
	wantsFeatures := len(req.FeatureKeys) > 0
	if wantsPackage == wantsFeatures {
		return nil, ErrInvalidSubscription
	}

	if wantsPackage {
		pkg, err := s.repo.Package().GetByName(ctx, *req.PackageName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPackageNotFound
			}
			return nil, err
		}
		sub.PackageID = &pkg.ID
		sub.Package = pkg
		if err := s.repo.Subscription().ReplaceSelectedFeatures(ctx, sub, nil); err != nil {
			return nil, err
		}
		sub.SelectedFeatures = nil
	} else {
		features, err := s.repo.Feature().GetByKeys(ctx, req.FeatureKeys)
		if err != nil {
			return nil, err
		}
		if len(features) != len(req.FeatureKeys) {
			return nil, ErrFeatureNotFound
		}
		sub.PackageID = nil
		sub.Package = nil
		if err := s.repo.Subscription().ReplaceSelectedFeatures(ctx, sub, features); err != nil {
			return nil, err
		}
		sub.SelectedFeatures = features
	}

	if req.AgentCount != nil && *req.AgentCount > 0 {
		sub.AgentCount = *req.AgentCount
	}
	sub.UpdatedAt = time.Now()

	if err := s.repo.Subscription().Save(ctx, sub); err != nil {
		return nil, err
	}

	if sub.IsActive {
		if _, err := s.entitlements.SyncTenantFeatures(ctx, sub); err != nil {
			s.logger.Error("entitlement sync failed after subscription change", err,
				zap.String("tenant_id", tenant.ID))
			if qErr := s.sqsSvc.SendSyncMessage(ctx, tenant.ID, sub.ID, err.Error()); qErr != nil {
				s.logger.Error("failed to queue entitlement sync retry", qErr,
					zap.String("tenant_id", tenant.ID))
			}
			return nil, fmt.Errorf("subscription saved but entitlement sync failed: %w", err)
		}
	}

	return subscriptionInfo(sub), nil
}

// ResyncTenant re-runs entitlement reconciliation for a tenant by ID. Used by
// the sync worker when a synchronous attempt failed.
func (s *SubscriptionService) ResyncTenant(ctx context.Context, tenantID string) (*domain.SyncResult, error) {
	sub, err := s.repo.Subscription().GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSubscription
		}
		return nil, err
	}
	if !sub.IsActive {
		return &domain.SyncResult{EnabledFeatures: []string{}, DisabledFeatures: []string{}}, nil
	}
	return s.entitlements.SyncTenantFeatures(ctx, sub)
}

// RecordUsage counts one billable event against the tenant's subscription.
func (s *SubscriptionService) RecordUsage(ctx context.Context, eventType domain.UsageEventType, quantity int) error {
	tenant, err := utils.GetTenantFromContext(ctx)
	if err != nil || tenant.IsPublic() {
		return ErrNoSubscription
	}
	sub, err := s.repo.Subscription().GetByTenantID(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSubscription
		}
		return err
	}
	if quantity <= 0 {
		quantity = 1
	}

	switch eventType {
	case domain.UsageUserAdded:
		sub.CurrentUsers += quantity
	case domain.UsageUserRemoved:
		sub.CurrentUsers -= quantity
		if sub.CurrentUsers < 0 {
			sub.CurrentUsers = 0
		}
	case domain.UsageWhatsAppMessage:
		sub.WhatsAppMessagesUsed += quantity
	}

	if err := s.repo.Subscription().Save(ctx, sub); err != nil {
		return err
	}

	return s.repo.UsageLog().Create(ctx, &domain.UsageLog{
		SubscriptionID: sub.ID,
		TenantID:       tenant.ID,
		EventType:      eventType,
		Quantity:       quantity,
	})
}
