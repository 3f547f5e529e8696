package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/utils"
)

type BaseHandler struct{}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// RespondError maps service errors onto HTTP status codes.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTenantNotFound),
		errors.Is(err, service.ErrPackageNotFound),
		errors.Is(err, service.ErrWhitelistEntryNotFound),
		errors.Is(err, service.ErrNoSubscription):
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrTenantExists):
		c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrNoActiveSubscription):
		c.JSON(http.StatusPaymentRequired, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidSubscription),
		errors.Is(err, service.ErrFeatureNotFound),
		errors.Is(err, service.ErrSchemaNameInvalid),
		errors.Is(err, service.ErrInvalidIPAddress),
		errors.Is(err, service.ErrUnknownLimitKind):
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
	}
}
