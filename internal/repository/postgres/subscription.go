package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type SubscriptionRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewSubscriptionRepository(writerDB, readerDB *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *SubscriptionRepository) GetByTenantID(ctx context.Context, tenantID string) (*domain.TenantSubscription, error) {
	var sub domain.TenantSubscription
	err := r.readerDB.WithContext(ctx).
		Preload("Package").
		Preload("SelectedFeatures").
		First(&sub, "tenant_id = ?", tenantID).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Save(ctx context.Context, sub *domain.TenantSubscription) error {
	// Omit the association so a save never silently rewrites the selected
	// feature set; ReplaceSelectedFeatures is the explicit path for that.
	return r.writerDB.WithContext(ctx).
		Omit("SelectedFeatures").
		Save(sub).Error
}

func (r *SubscriptionRepository) ReplaceSelectedFeatures(ctx context.Context, sub *domain.TenantSubscription, features []domain.Feature) error {
	if err := r.writerDB.WithContext(ctx).Model(sub).Association("SelectedFeatures").Replace(features); err != nil {
		return err
	}
	sub.SelectedFeatures = features
	return nil
}

func (r *SubscriptionRepository) ListExpiredTrials(ctx context.Context, asOf time.Time) ([]domain.TenantSubscription, error) {
	var subs []domain.TenantSubscription
	err := r.readerDB.WithContext(ctx).
		Preload("Package").
		Preload("SelectedFeatures").
		Where("is_trial = ? AND is_active = ? AND trial_ends_at IS NOT NULL AND trial_ends_at <= ?", true, true, asOf).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
