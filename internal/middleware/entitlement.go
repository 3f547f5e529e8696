package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

//go:generate mockery --name SubscriptionChecker --output ../mocks
type SubscriptionChecker interface {
	HasFeature(ctx context.Context, key domain.FeatureKey) (bool, error)
	CheckLimit(ctx context.Context, kind domain.LimitKind) (*domain.LimitStatus, error)
}

// EntitlementMiddleware gates tenant endpoints on subscription capabilities.
type EntitlementMiddleware struct {
	subscriptions SubscriptionChecker
	logger        *logger.Logger
}

func NewEntitlementMiddleware(subscriptions SubscriptionChecker, logger *logger.Logger) *EntitlementMiddleware {
	return &EntitlementMiddleware{
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// RequireFeature rejects the request unless the tenant's subscription grants
// the capability, through either entitlement model.
func (m *EntitlementMiddleware) RequireFeature(key domain.FeatureKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		has, err := m.subscriptions.HasFeature(RequestCtx(c), key)
		if err != nil {
			m.logger.Error("feature check failed", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Feature check failed"})
			return
		}
		if !has {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Feature not available on current subscription",
				"feature": key,
			})
			return
		}
		c.Next()
	}
}

// RequireWithinLimit rejects the request once the subscription limit is
// exhausted. Tenants without an active subscription get 402.
func (m *EntitlementMiddleware) RequireWithinLimit(kind domain.LimitKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := m.subscriptions.CheckLimit(RequestCtx(c), kind)
		if err != nil {
			if errors.Is(err, service.ErrNoActiveSubscription) {
				c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "No active subscription"})
				return
			}
			m.logger.Error("limit check failed", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Limit check failed"})
			return
		}
		if !status.WithinLimit {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription limit reached",
				"limit": status,
			})
			return
		}
		c.Next()
	}
}
