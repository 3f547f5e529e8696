package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type UsageLogRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewUsageLogRepository(writerDB, readerDB *gorm.DB) *UsageLogRepository {
	return &UsageLogRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *UsageLogRepository) Create(ctx context.Context, log *domain.UsageLog) error {
	return r.writerDB.WithContext(ctx).Create(log).Error
}

func (r *UsageLogRepository) ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.UsageLog, error) {
	var logs []domain.UsageLog
	err := r.readerDB.WithContext(ctx).
		Where("created_at < ?", before).
		Order("created_at").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *UsageLogRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.writerDB.WithContext(ctx).Delete(&domain.UsageLog{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}
