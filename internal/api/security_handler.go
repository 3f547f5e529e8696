package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/middleware"
	"github.com/echodesk/echodesk-api/internal/service"
)

//go:generate mockery --name SecurityService --output ../mocks
type SecurityService interface {
	ListWhitelist(ctx context.Context, tenantID string) ([]dto.WhitelistEntryResponse, error)
	AddWhitelistEntry(ctx context.Context, tenantID string, req dto.AddWhitelistEntryRequest) (*dto.WhitelistEntryResponse, error)
	RemoveWhitelistEntry(ctx context.Context, tenantID, entryID string) error
}

type SecurityHandler struct {
	*BaseHandler
	service SecurityService
}

func NewSecurityHandler(service SecurityService) *SecurityHandler {
	return &SecurityHandler{service: service}
}

// CurrentIP echoes the caller's address as the middleware sees it. Always
// reachable, whitelisted or not, so a locked-out admin can find out what to
// add.
func (h *SecurityHandler) CurrentIP(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CurrentIPResponse{
		IPAddress: service.ClientIP(c.Request),
	})
}

func (h *SecurityHandler) ListWhitelist(c *gin.Context) {
	tenant := middleware.TenantFromGin(c)
	if tenant == nil || tenant.IsPublic() {
		c.JSON(http.StatusNotFound, dto.Error{Error: "no tenant bound to request"})
		return
	}

	entries, err := h.service.ListWhitelist(h.RequestCtx(c), tenant.ID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *SecurityHandler) AddWhitelistEntry(c *gin.Context) {
	tenant := middleware.TenantFromGin(c)
	if tenant == nil || tenant.IsPublic() {
		c.JSON(http.StatusNotFound, dto.Error{Error: "no tenant bound to request"})
		return
	}

	var req dto.AddWhitelistEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	entry, err := h.service.AddWhitelistEntry(h.RequestCtx(c), tenant.ID, req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *SecurityHandler) RemoveWhitelistEntry(c *gin.Context) {
	tenant := middleware.TenantFromGin(c)
	if tenant == nil || tenant.IsPublic() {
		c.JSON(http.StatusNotFound, dto.Error{Error: "no tenant bound to request"})
		return
	}

	if err := h.service.RemoveWhitelistEntry(h.RequestCtx(c), tenant.ID, c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
