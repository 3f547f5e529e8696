package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type PackageRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewPackageRepository(writerDB, readerDB *gorm.DB) *PackageRepository {
	return &PackageRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *PackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	var pkg domain.Package
	if err := r.readerDB.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) GetByName(ctx context.Context, name string) (*domain.Package, error) {
	var pkg domain.Package
	if err := r.readerDB.WithContext(ctx).First(&pkg, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]domain.Package, error) {
	var packages []domain.Package
	err := r.readerDB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("pricing_model, sort_order, price_gel").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}
