package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type PaymentOrderRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewPaymentOrderRepository(writerDB, readerDB *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *PaymentOrderRepository) Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	if err := r.writerDB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PaymentOrderRepository) LatestPaidForTenant(ctx context.Context, tenantID string) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, domain.PaymentPaid).
		Order("paid_at DESC").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
