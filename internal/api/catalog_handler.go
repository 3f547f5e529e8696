package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/api/dto"
)

//go:generate mockery --name CatalogService --output ../mocks
type CatalogService interface {
	ListPackages(ctx context.Context) ([]dto.PackageResponse, error)
	ListFeatures(ctx context.Context) ([]dto.FeatureResponse, error)
}

type CatalogHandler struct {
	*BaseHandler
	service CatalogService
}

func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.service.ListPackages(h.RequestCtx(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, packages)
}

func (h *CatalogHandler) ListFeatures(c *gin.Context) {
	features, err := h.service.ListFeatures(h.RequestCtx(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, features)
}
