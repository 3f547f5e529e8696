package postgres

import (
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/repository"
)

type postgresRepository struct {
	writerDB         *gorm.DB
	readerDB         *gorm.DB
	tenantRepo       repository.TenantRepository
	packageRepo      repository.PackageRepository
	featureRepo      repository.FeatureRepository
	subscriptionRepo repository.SubscriptionRepository
	entitlementRepo  repository.EntitlementRepository
	whitelistRepo    repository.WhitelistRepository
	usageLogRepo     repository.UsageLogRepository
	paymentOrderRepo repository.PaymentOrderRepository
}

func NewRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	return &postgresRepository{
		writerDB:         dbConnections.Writer,
		readerDB:         dbConnections.Reader,
		tenantRepo:       NewTenantRepository(dbConnections.Writer, dbConnections.Reader),
		packageRepo:      NewPackageRepository(dbConnections.Writer, dbConnections.Reader),
		featureRepo:      NewFeatureRepository(dbConnections.Writer, dbConnections.Reader),
		subscriptionRepo: NewSubscriptionRepository(dbConnections.Writer, dbConnections.Reader),
		entitlementRepo:  NewEntitlementRepository(dbConnections.Writer, dbConnections.Reader),
		whitelistRepo:    NewWhitelistRepository(dbConnections.Writer, dbConnections.Reader),
		usageLogRepo:     NewUsageLogRepository(dbConnections.Writer, dbConnections.Reader),
		paymentOrderRepo: NewPaymentOrderRepository(dbConnections.Writer, dbConnections.Reader),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) Package() repository.PackageRepository {
	return r.packageRepo
}

func (r *postgresRepository) Feature() repository.FeatureRepository {
	return r.featureRepo
}

func (r *postgresRepository) Subscription() repository.SubscriptionRepository {
	return r.subscriptionRepo
}

func (r *postgresRepository) Entitlement() repository.EntitlementRepository {
	return r.entitlementRepo
}

func (r *postgresRepository) Whitelist() repository.WhitelistRepository {
	return r.whitelistRepo
}

func (r *postgresRepository) UsageLog() repository.UsageLogRepository {
	return r.usageLogRepo
}

func (r *postgresRepository) PaymentOrder() repository.PaymentOrderRepository {
	return r.paymentOrderRepo
}
