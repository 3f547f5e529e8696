package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/middleware"
)

//go:generate mockery --name SubscriptionService --output ../mocks
type SubscriptionService interface {
	Info(ctx context.Context) (*dto.SubscriptionInfoResponse, error)
	UpdateSubscription(ctx context.Context, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionInfoResponse, error)
	CheckLimit(ctx context.Context, kind domain.LimitKind) (*domain.LimitStatus, error)
	RecordUsage(ctx context.Context, eventType domain.UsageEventType, quantity int) error
}

//go:generate mockery --name EntitlementReader --output ../mocks
type EntitlementReader interface {
	Entitlements(ctx context.Context, tenantID string) (features []string, permissions []string, err error)
}

type SubscriptionHandler struct {
	*BaseHandler
	subscriptions SubscriptionService
	entitlements  EntitlementReader
}

func NewSubscriptionHandler(subscriptions SubscriptionService, entitlements EntitlementReader) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subscriptions,
		entitlements:  entitlements,
	}
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	info, err := h.subscriptions.Info(h.RequestCtx(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	info, err := h.subscriptions.UpdateSubscription(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *SubscriptionHandler) GetLimit(c *gin.Context) {
	status, err := h.subscriptions.CheckLimit(h.RequestCtx(c), domain.LimitKind(c.Param("kind")))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// RecordWhatsAppUsage counts sent WhatsApp messages against the limit.
func (h *SubscriptionHandler) RecordWhatsAppUsage(c *gin.Context) {
	h.recordUsage(c, domain.UsageWhatsAppMessage)
}

// RecordUserAdded counts a provisioned agent seat.
func (h *SubscriptionHandler) RecordUserAdded(c *gin.Context) {
	h.recordUsage(c, domain.UsageUserAdded)
}

// RecordUserRemoved releases an agent seat. Deliberately not gated: removal
// must work even for tenants over their limit.
func (h *SubscriptionHandler) RecordUserRemoved(c *gin.Context) {
	h.recordUsage(c, domain.UsageUserRemoved)
}

func (h *SubscriptionHandler) recordUsage(c *gin.Context, eventType domain.UsageEventType) {
	req := dto.RecordUsageRequest{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
			return
		}
	}

	if err := h.subscriptions.RecordUsage(h.RequestCtx(c), eventType, req.Quantity); err != nil {
		h.RespondError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *SubscriptionHandler) GetEntitlements(c *gin.Context) {
	tenant := middleware.TenantFromGin(c)
	if tenant == nil || tenant.IsPublic() {
		c.JSON(http.StatusNotFound, dto.Error{Error: "no tenant bound to request"})
		return
	}

	features, permissions, err := h.entitlements.Entitlements(h.RequestCtx(c), tenant.ID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EntitlementsResponse{
		Features:    features,
		Permissions: permissions,
	})
}
