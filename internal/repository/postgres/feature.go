package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type FeatureRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewFeatureRepository(writerDB, readerDB *gorm.DB) *FeatureRepository {
	return &FeatureRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *FeatureRepository) ListActive(ctx context.Context) ([]domain.Feature, error) {
	var features []domain.Feature
	err := r.readerDB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category, sort_order, name").
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (r *FeatureRepository) GetByKeys(ctx context.Context, keys []string) ([]domain.Feature, error) {
	var features []domain.Feature
	err := r.readerDB.WithContext(ctx).
		Where("key IN ? AND is_active = ?", keys, true).
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (r *FeatureRepository) GetPermissionByKey(ctx context.Context, key string) (*domain.Permission, error) {
	var permission domain.Permission
	if err := r.readerDB.WithContext(ctx).First(&permission, "key = ? AND is_active = ?", key, true).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}
