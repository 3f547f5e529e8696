package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type ContextKey string

const (
	ClaimsKey     ContextKey = "claims"
	TenantKey     ContextKey = "tenant"
	RouteTableKey ContextKey = "route_table"
	ClientIPKey   ContextKey = "client_ip"
)

var (
	ErrNoClaimsInContext = errors.New("no claims found in context")
	ErrInvalidClaimsType = errors.New("invalid claims type")
	ErrNoTenantInContext = errors.New("no tenant found in context")
)

// GetTenantFromContext returns the tenant resolved for this request. The
// synthetic public tenant counts: callers that need a real tenant should also
// check IsPublic.
func GetTenantFromContext(c context.Context) (*domain.Tenant, error) {
	tenant, ok := c.Value(TenantKey).(*domain.Tenant)
	if !ok || tenant == nil {
		return nil, ErrNoTenantInContext
	}
	return tenant, nil
}

func GetClaimsFromContext(c context.Context) (jwt.MapClaims, error) {
	claims, ok := c.Value(ClaimsKey).(jwt.MapClaims)
	if !ok {
		return nil, ErrNoClaimsInContext
	}
	return claims, nil
}

// IsSuperuserClaims reports whether the JWT claims mark the caller as a
// platform superuser.
func IsSuperuserClaims(claims jwt.MapClaims) bool {
	if claims == nil {
		return false
	}
	if v, ok := claims["is_superuser"].(bool); ok {
		return v
	}
	return false
}
