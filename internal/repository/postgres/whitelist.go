package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type WhitelistRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewWhitelistRepository(writerDB, readerDB *gorm.DB) *WhitelistRepository {
	return &WhitelistRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *WhitelistRepository) ListActive(ctx context.Context, tenantID string) ([]domain.TenantIPWhitelist, error) {
	var entries []domain.TenantIPWhitelist
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *WhitelistRepository) List(ctx context.Context, tenantID string) ([]domain.TenantIPWhitelist, error) {
	var entries []domain.TenantIPWhitelist
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *WhitelistRepository) Create(ctx context.Context, entry *domain.TenantIPWhitelist) (*domain.TenantIPWhitelist, error) {
	if err := r.writerDB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *WhitelistRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.writerDB.WithContext(ctx).
		Delete(&domain.TenantIPWhitelist{}, "tenant_id = ? AND id = ?", tenantID, id).Error
}
