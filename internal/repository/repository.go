package repository

import (
	"context"
	"time"

	"github.com/echodesk/echodesk-api/internal/domain"
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySchemaName(ctx context.Context, schemaName string) (*domain.Tenant, error)
	GetByDomainURL(ctx context.Context, domainURL string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Tenant, error)
}

//go:generate mockery --name PackageRepository --output ../mocks
type PackageRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	GetByName(ctx context.Context, name string) (*domain.Package, error)
	ListActive(ctx context.Context) ([]domain.Package, error)
}

//go:generate mockery --name FeatureRepository --output ../mocks
type FeatureRepository interface {
	ListActive(ctx context.Context) ([]domain.Feature, error)
	GetByKeys(ctx context.Context, keys []string) ([]domain.Feature, error)
	GetPermissionByKey(ctx context.Context, key string) (*domain.Permission, error)
}

//go:generate mockery --name SubscriptionRepository --output ../mocks
type SubscriptionRepository interface {
	// GetByTenantID returns the subscription with package and selected
	// features preloaded, regardless of its active flag.
	GetByTenantID(ctx context.Context, tenantID string) (*domain.TenantSubscription, error)
	Save(ctx context.Context, sub *domain.TenantSubscription) error
	ReplaceSelectedFeatures(ctx context.Context, sub *domain.TenantSubscription, features []domain.Feature) error
	ListExpiredTrials(ctx context.Context, asOf time.Time) ([]domain.TenantSubscription, error)
}

// EntitlementRepository covers the materialized entitlement state. Sync runs
// inside Transaction so a failed reconciliation aborts atomically.
//
//go:generate mockery --name EntitlementRepository --output ../mocks
type EntitlementRepository interface {
	Transaction(ctx context.Context, fn func(EntitlementRepository) error) error
	ListPackageFeatures(ctx context.Context, packageID string) ([]domain.PackageFeature, error)
	ListTenantFeatures(ctx context.Context, tenantID string) ([]domain.TenantFeature, error)
	SaveTenantFeature(ctx context.Context, tf *domain.TenantFeature) error
	ListFeaturePermissions(ctx context.Context, featureID string) ([]domain.FeaturePermission, error)
	ListTenantPermissions(ctx context.Context, tenantID string) ([]domain.TenantPermission, error)
	SaveTenantPermission(ctx context.Context, tp *domain.TenantPermission) error
	HasActiveFeature(ctx context.Context, tenantID, featureKey string) (bool, error)
	HasActivePermission(ctx context.Context, tenantID, permissionKey string) (bool, error)
}

//go:generate mockery --name WhitelistRepository --output ../mocks
type WhitelistRepository interface {
	ListActive(ctx context.Context, tenantID string) ([]domain.TenantIPWhitelist, error)
	List(ctx context.Context, tenantID string) ([]domain.TenantIPWhitelist, error)
	Create(ctx context.Context, entry *domain.TenantIPWhitelist) (*domain.TenantIPWhitelist, error)
	Delete(ctx context.Context, tenantID, id string) error
}

//go:generate mockery --name UsageLogRepository --output ../mocks
type UsageLogRepository interface {
	Create(ctx context.Context, log *domain.UsageLog) error
	ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.UsageLog, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

//go:generate mockery --name PaymentOrderRepository --output ../mocks
type PaymentOrderRepository interface {
	Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error)
	LatestPaidForTenant(ctx context.Context, tenantID string) (*domain.PaymentOrder, error)
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	Tenant() TenantRepository
	Package() PackageRepository
	Feature() FeatureRepository
	Subscription() SubscriptionRepository
	Entitlement() EntitlementRepository
	Whitelist() WhitelistRepository
	UsageLog() UsageLogRepository
	PaymentOrder() PaymentOrderRepository
}
