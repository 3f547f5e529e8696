package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/utils"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

// Paths reachable even from non-whitelisted addresses. Login and password
// reset must work for an admin locked out by their own whitelist, the
// current-ip endpoint exists precisely to tell them what to whitelist, and
// the public tenant-info endpoint is unauthenticated by contract.
var whitelistExcludedPrefixes = []string{
	"/health",
	"/api/auth/login",
	"/api/auth/logout",
	"/api/auth/refresh",
	"/api/auth/password-reset",
	"/api/tenant/info",
	"/api/security/current-ip",
}

// IPWhitelistMiddleware enforces the per-tenant IP allow-list. It runs after
// tenant resolution and before authentication.
type IPWhitelistMiddleware struct {
	security *service.SecurityService
	auth     *AuthMiddleware
	logger   *logger.Logger
}

func NewIPWhitelistMiddleware(security *service.SecurityService, auth *AuthMiddleware, logger *logger.Logger) *IPWhitelistMiddleware {
	return &IPWhitelistMiddleware{
		security: security,
		auth:     auth,
		logger:   logger,
	}
}

func (m *IPWhitelistMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := TenantFromGin(c)
		if tenant == nil || tenant.IsPublic() || !tenant.IPWhitelistEnabled {
			c.Next()
			return
		}

		for _, prefix := range whitelistExcludedPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		clientIP := service.ClientIP(c.Request)
		c.Set(string(utils.ClientIPKey), clientIP)

		isSuperuser := m.auth.IsSuperuserToken(c.GetHeader("Authorization"))

		allowed, err := m.security.IsIPWhitelisted(RequestCtx(c), tenant, clientIP, isSuperuser)
		if err != nil {
			if errors.Is(err, service.ErrInvalidIPAddress) {
				m.denied(c, tenant.SchemaName, clientIP)
				return
			}
			m.logger.Error("whitelist lookup failed", err,
				zap.String("schema", tenant.SchemaName))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "IP whitelist check failed"})
			return
		}
		if !allowed {
			m.denied(c, tenant.SchemaName, clientIP)
			return
		}

		c.Next()
	}
}

// denied rejects the request and echoes the caller's address so a locked-out
// admin can see exactly what to whitelist.
func (m *IPWhitelistMiddleware) denied(c *gin.Context, schemaName, clientIP string) {
	m.logger.Warn("request blocked by IP whitelist",
		zap.String("schema", schemaName),
		zap.String("ip", clientIP),
		zap.String("path", c.Request.URL.Path))
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error":      "Your IP address is not whitelisted for this organization",
		"ip_address": clientIP,
	})
}
