package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/internal/tenancy"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

//go:generate mockery --name HostCacheInvalidator --output ../mocks
type HostCacheInvalidator interface {
	Invalidate(ctx context.Context, tenant *domain.Tenant)
}

type TenantService struct {
	repo         repository.Repository
	entitlements *EntitlementService
	resolver     HostCacheInvalidator
	config       *config.Config
	logger       *logger.Logger
}

func NewTenantService(repo repository.Repository, entitlements *EntitlementService, resolver HostCacheInvalidator, cfg *config.Config, log *logger.Logger) *TenantService {
	return &TenantService{
		repo:         repo,
		entitlements: entitlements,
		resolver:     resolver,
		config:       cfg,
		logger:       log,
	}
}

// Register creates a tenant, a trial subscription, the pending payment order
// for the first billing cycle, and the tenant's initial entitlement rows.
func (s *TenantService) Register(ctx context.Context, req dto.RegisterTenantRequest) (*dto.TenantResponse, error) {
	if !tenancy.ValidSchemaName(req.SchemaName) {
		return nil, ErrSchemaNameInvalid
	}

	if _, err := s.repo.Tenant().GetBySchemaName(ctx, req.SchemaName); err == nil {
		return nil, ErrTenantExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	domainURL := req.DomainURL
	if domainURL == "" {
		domainURL = req.SchemaName + "." + s.config.APIDomain
	}

	preferredLanguage := req.PreferredLanguage
	if preferredLanguage == "" {
		preferredLanguage = "en"
	}

	tenant := &domain.Tenant{
		SchemaName:        req.SchemaName,
		DomainURL:         domainURL,
		Name:              req.Name,
		Description:       req.Description,
		AdminEmail:        req.AdminEmail,
		AdminName:         req.AdminName,
		PreferredLanguage: preferredLanguage,
		FrontendURL:       req.FrontendURL,
		DeploymentStatus:  domain.DeploymentPending,
		IsActive:          true,
	}

	created, err := s.repo.Tenant().Create(ctx, tenant)
	if err != nil {
		return nil, err
	}

	sub, err := s.createTrialSubscription(ctx, created, req)
	if err != nil {
		return nil, err
	}

	if sub.PackageID != nil {
		if _, err := s.entitlements.SyncTenantFeatures(ctx, sub); err != nil {
			return nil, fmt.Errorf("tenant created but entitlement sync failed: %w", err)
		}
	}

	order := &domain.PaymentOrder{
		OrderID:    "ED-" + uuid.NewString(),
		TenantID:   &created.ID,
		PackageID:  sub.PackageID,
		Amount:     sub.MonthlyCost(),
		Currency:   "GEL",
		AgentCount: sub.AgentCount,
		Status:     domain.PaymentPending,
	}
	if _, err := s.repo.PaymentOrder().Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("tenant registered",
		zap.String("tenant_id", created.ID),
		zap.String("schema", created.SchemaName),
		zap.String("domain", created.DomainURL))

	return dto.FromTenant(created), nil
}

func (s *TenantService) createTrialSubscription(ctx context.Context, tenant *domain.Tenant, req dto.RegisterTenantRequest) (*domain.TenantSubscription, error) {
	wantsPackage := req.PackageName != nil && *req.PackageName != ""
	wantsFeatures := len(req.FeatureKeys) > 0
	if wantsPackage == wantsFeatures {
		return nil, ErrInvalidSubscription
	}

	now := time.Now()
	trialEndsAt := now.AddDate(0, 0, s.config.TrialDays)

	agentCount := req.AgentCount
	if agentCount <= 0 {
		agentCount = 10
	}

	sub := &domain.TenantSubscription{
		TenantID:    tenant.ID,
		AgentCount:  agentCount,
		IsActive:    true,
		StartsAt:    now,
		IsTrial:     true,
		TrialEndsAt: &trialEndsAt,
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
	}

	if err := s.repo.Subscription().Save(ctx, sub); err != nil {
		return nil, err
	}

	if wantsFeatures {
		features, err := s.repo.Feature().GetByKeys(ctx, req.FeatureKeys)
		if err != nil {
			return nil, err
		}
		if len(features) != len(req.FeatureKeys) {
			return nil, ErrFeatureNotFound
		}
		if err := s.repo.Subscription().ReplaceSelectedFeatures(ctx, sub, features); err != nil {
			return nil, err
		}
		sub.SelectedFeatures = features
	}

	return sub, nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return dto.FromTenant(tenant), nil
}

func (s *TenantService) List(ctx context.Context) ([]dto.TenantResponse, error) {
	tenants, err := s.repo.Tenant().List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = *dto.FromTenant(&tenants[i])
	}
	return responses, nil
}

// Update applies the patch and drops the tenant's cached host resolutions so
// domain or active-flag changes take effect immediately.
func (s *TenantService) Update(ctx context.Context, id string, req dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	// Invalidate under the pre-update domain as well, in case it changes.
	previous := *tenant

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Description != nil {
		tenant.Description = *req.Description
	}
	if req.DomainURL != nil {
		tenant.DomainURL = *req.DomainURL
	}
	if req.FrontendURL != nil {
		tenant.FrontendURL = *req.FrontendURL
	}
	if req.PreferredLanguage != nil {
		tenant.PreferredLanguage = *req.PreferredLanguage
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}
	if req.IPWhitelistEnabled != nil {
		tenant.IPWhitelistEnabled = *req.IPWhitelistEnabled
	}
	if req.SuperuserBypassWhitelist != nil {
		tenant.SuperuserBypassWhitelist = *req.SuperuserBypassWhitelist
	}
	tenant.UpdatedAt = time.Now()

	if err := s.repo.Tenant().Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, &previous)
	s.resolver.Invalidate(ctx, tenant)

	return dto.FromTenant(tenant), nil
}

// Deactivate marks the tenant inactive. Its schema and data stay in place;
// requests start failing with 403 as soon as the host cache entry is gone.
func (s *TenantService) Deactivate(ctx context.Context, id string) error {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantNotFound
		}
		return err
	}

	if err := s.repo.Tenant().Deactivate(ctx, id); err != nil {
		return err
	}

	s.resolver.Invalidate(ctx, tenant)
	return nil
}
