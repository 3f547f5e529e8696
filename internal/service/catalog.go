package service

import (
	"context"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/repository"
)

// CatalogService serves the public pricing catalog: legacy packages and the
// a la carte feature list.
type CatalogService struct {
	repo repository.Repository
}

func NewCatalogService(repo repository.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListPackages(ctx context.Context) ([]dto.PackageResponse, error) {
	packages, err := s.repo.Package().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PackageResponse, len(packages))
	for i := range packages {
		responses[i] = *dto.FromPackage(&packages[i])
	}
	return responses, nil
}

func (s *CatalogService) ListFeatures(ctx context.Context) ([]dto.FeatureResponse, error) {
	features, err := s.repo.Feature().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FeatureResponse, len(features))
	for i := range features {
		responses[i] = *dto.FromFeature(&features[i])
	}
	return responses, nil
}
