package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/tenancy"
	"github.com/echodesk/echodesk-api/internal/utils"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

// TenantMiddleware resolves the request's hostname to a tenant, binds the
// database to the tenant's schema for the duration of the request and selects
// the route table. It runs before everything except recovery.
type TenantMiddleware struct {
	resolver *tenancy.Resolver
	switcher *tenancy.SchemaSwitcher
	logger   *logger.Logger
}

func NewTenantMiddleware(resolver *tenancy.Resolver, switcher *tenancy.SchemaSwitcher, logger *logger.Logger) *TenantMiddleware {
	return &TenantMiddleware{
		resolver: resolver,
		switcher: switcher,
		logger:   logger,
	}
}

func (m *TenantMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := m.resolver.Resolve(c.Request.Context(), c.Request.Host)
		if err != nil {
			if errors.Is(err, tenancy.ErrTenantNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown tenant domain"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Tenant resolution failed"})
			return
		}

		if !tenant.IsPublic() && !tenant.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Tenant is deactivated"})
			return
		}

		c.Set(string(utils.TenantKey), tenant)
		c.Set(string(utils.RouteTableKey), tenancy.RouteTableFor(tenant.SchemaName))

		if tenant.IsPublic() {
			c.Next()
			return
		}

		// The bound transaction stays middleware-local: subscription and
		// entitlement data lives in the public schema, so no current handler
		// queries through it. Tenant-schema application endpoints added later
		// get their handle exposed from here.
		tx, err := m.switcher.Bind(c.Request.Context(), tenant.SchemaName)
		if err != nil {
			m.logger.Error("failed to bind tenant schema for request", err,
				zap.String("schema", tenant.SchemaName),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Tenant database unavailable"})
			return
		}

		c.Next()

		ok := len(c.Errors) == 0 && c.Writer.Status() < http.StatusInternalServerError
		m.switcher.Release(tx, ok)
	}
}

// RequireRouteTable rejects requests whose resolved schema does not grant
// access to this URL surface. Tenant-only endpoints 404 on the public domain
// and vice versa, the same as if the route did not exist.
func RequireRouteTable(table tenancy.RouteTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := c.Get(string(utils.RouteTableKey))
		if !exists || current.(tenancy.RouteTable) != table {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Next()
	}
}

// RequestCtx copies gin context keys into the request context so services
// see the tenant binding through plain context.Context.
func RequestCtx(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	for k, v := range c.Keys {
		ctx = context.WithValue(ctx, utils.ContextKey(k), v)
	}
	return ctx
}

// TenantFromGin returns the tenant set by Handler, or nil.
func TenantFromGin(c *gin.Context) *domain.Tenant {
	v, exists := c.Get(string(utils.TenantKey))
	if !exists {
		return nil
	}
	tenant, _ := v.(*domain.Tenant)
	return tenant
}
