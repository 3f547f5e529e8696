package tenancy

import (
	"github.com/echodesk/echodesk-api/internal/domain"
)

// RouteTable selects which URL surface a request may reach: tenant
// management and registration on the public schema, application APIs on
// tenant schemas.
type RouteTable string

const (
	PublicRoutes RouteTable = "public"
	TenantRoutes RouteTable = "tenant"
)

// RouteTableFor is a pure function of the resolved schema.
func RouteTableFor(schemaName string) RouteTable {
	if schemaName == domain.PublicSchemaName {
		return PublicRoutes
	}
	return TenantRoutes
}
