package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
)

type EntitlementRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewEntitlementRepository(writerDB, readerDB *gorm.DB) *EntitlementRepository {
	return &EntitlementRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// Transaction runs fn against a repository bound to a single database
// transaction. Reads inside the transaction go to the writer so the
// reconciliation sees its own writes.
func (r *EntitlementRepository) Transaction(ctx context.Context, fn func(repository.EntitlementRepository) error) error {
	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&EntitlementRepository{writerDB: tx, readerDB: tx})
	})
}

func (r *EntitlementRepository) ListPackageFeatures(ctx context.Context, packageID string) ([]domain.PackageFeature, error) {
	var pfs []domain.PackageFeature
	err := r.readerDB.WithContext(ctx).
		Preload("Feature").
		Joins("JOIN features ON features.id = package_features.feature_id AND features.is_active = ?", true).
		Where("package_features.package_id = ?", packageID).
		Find(&pfs).Error
	if err != nil {
		return nil, err
	}
	return pfs, nil
}

func (r *EntitlementRepository) ListTenantFeatures(ctx context.Context, tenantID string) ([]domain.TenantFeature, error) {
	var tfs []domain.TenantFeature
	err := r.readerDB.WithContext(ctx).
		Preload("Feature").
		Where("tenant_id = ?", tenantID).
		Find(&tfs).Error
	if err != nil {
		return nil, err
	}
	return tfs, nil
}

func (r *EntitlementRepository) SaveTenantFeature(ctx context.Context, tf *domain.TenantFeature) error {
	return r.writerDB.WithContext(ctx).Save(tf).Error
}

func (r *EntitlementRepository) ListFeaturePermissions(ctx context.Context, featureID string) ([]domain.FeaturePermission, error) {
	var fps []domain.FeaturePermission
	err := r.readerDB.WithContext(ctx).
		Preload("Permission").
		Where("feature_id = ?", featureID).
		Find(&fps).Error
	if err != nil {
		return nil, err
	}
	return fps, nil
}

func (r *EntitlementRepository) ListTenantPermissions(ctx context.Context, tenantID string) ([]domain.TenantPermission, error) {
	var tps []domain.TenantPermission
	err := r.readerDB.WithContext(ctx).
		Preload("Permission").
		Where("tenant_id = ?", tenantID).
		Find(&tps).Error
	if err != nil {
		return nil, err
	}
	return tps, nil
}

func (r *EntitlementRepository) SaveTenantPermission(ctx context.Context, tp *domain.TenantPermission) error {
	return r.writerDB.WithContext(ctx).Save(tp).Error
}

func (r *EntitlementRepository) HasActiveFeature(ctx context.Context, tenantID, featureKey string) (bool, error) {
	var count int64
	err := r.readerDB.WithContext(ctx).
		Model(&domain.TenantFeature{}).
		Joins("JOIN features ON features.id = tenant_features.feature_id").
		Where("tenant_features.tenant_id = ? AND tenant_features.is_active = ?", tenantID, true).
		Where("features.key = ? AND features.is_active = ?", featureKey, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EntitlementRepository) HasActivePermission(ctx context.Context, tenantID, permissionKey string) (bool, error) {
	var count int64
	err := r.readerDB.WithContext(ctx).
		Model(&domain.TenantPermission{}).
		Joins("JOIN permissions ON permissions.id = tenant_permissions.permission_id").
		Where("tenant_permissions.tenant_id = ? AND tenant_permissions.is_active = ?", tenantID, true).
		Where("permissions.key = ? AND permissions.is_active = ?", permissionKey, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
