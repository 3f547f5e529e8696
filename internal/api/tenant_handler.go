package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/middleware"
)

//go:generate mockery --name TenantService --output ../mocks
type TenantService interface {
	Register(ctx context.Context, req dto.RegisterTenantRequest) (*dto.TenantResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TenantResponse, error)
	List(ctx context.Context) ([]dto.TenantResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type TenantHandler struct {
	*BaseHandler
	service TenantService
}

func NewTenantHandler(service TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterTenant creates a tenant together with its trial subscription.
// Open endpoint: this is the signup flow.
func (h *TenantHandler) RegisterTenant(c *gin.Context) {
	var req dto.RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, err := h.service.Register(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.service.List(h.RequestCtx(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenants)
}

func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.service.GetByID(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, err := h.service.Update(h.RequestCtx(c), c.Param("id"), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) DeactivateTenant(c *gin.Context) {
	if err := h.service.Deactivate(h.RequestCtx(c), c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TenantInfo returns the resolved tenant for the current hostname. Served on
// tenant domains so frontends can discover branding and language settings.
func (h *TenantHandler) TenantInfo(c *gin.Context) {
	tenant := middleware.TenantFromGin(c)
	if tenant == nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: "no tenant bound to request"})
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant))
}
