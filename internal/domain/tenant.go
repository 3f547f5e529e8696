package domain

import (
	"time"
)

// PublicSchemaName is the schema that hosts tenant management, registration
// and the package catalog. Every other schema belongs to exactly one tenant.
const PublicSchemaName = "public"

type DeploymentStatus string

const (
	DeploymentPending   DeploymentStatus = "pending"
	DeploymentDeploying DeploymentStatus = "deploying"
	DeploymentDeployed  DeploymentStatus = "deployed"
	DeploymentFailed    DeploymentStatus = "failed"
)

// Tenant is one customer organization, isolated in its own database schema.
// SchemaName doubles as the routing key for subdomain resolution.
type Tenant struct {
	ID                string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SchemaName        string           `gorm:"type:varchar(63);uniqueIndex;not null" json:"schema_name"`
	DomainURL         string           `gorm:"type:text;uniqueIndex;not null" json:"domain_url"`
	Name              string           `gorm:"type:text;not null" json:"name"`
	Description       string           `gorm:"type:text" json:"description,omitempty"`
	AdminEmail        string           `gorm:"type:text;not null" json:"admin_email"`
	AdminName         string           `gorm:"type:text;not null" json:"admin_name"`
	PreferredLanguage string           `gorm:"type:varchar(10);default:'en'" json:"preferred_language"`
	FrontendURL       string           `gorm:"type:text" json:"frontend_url,omitempty"`
	DeploymentStatus  DeploymentStatus `gorm:"type:varchar(20);default:'pending'" json:"deployment_status"`
	IsActive          bool             `gorm:"not null;default:true" json:"is_active"`

	// IP whitelist gate settings, enforced by the security middleware.
	IPWhitelistEnabled       bool `gorm:"not null;default:false" json:"ip_whitelist_enabled"`
	SuperuserBypassWhitelist bool `gorm:"not null;default:false" json:"superuser_bypass_whitelist"`

	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) IsPublic() bool {
	return t.SchemaName == PublicSchemaName
}

// PublicTenant returns the synthetic tenant used when a request targets the
// main or API domain directly. It is never persisted.
func PublicTenant(hostname string) *Tenant {
	return &Tenant{
		SchemaName: PublicSchemaName,
		DomainURL:  hostname,
		IsActive:   true,
	}
}

// TenantIPWhitelist is one allow-list entry for a tenant. A nil CIDRPrefix
// means exact IP match; otherwise the entry matches the whole network.
type TenantIPWhitelist struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID   string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	IPAddress  string    `gorm:"type:text;not null" json:"ip_address"`
	CIDRPrefix *int      `gorm:"type:smallint" json:"cidr_prefix,omitempty"`
	Label      string    `gorm:"type:text" json:"label,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (TenantIPWhitelist) TableName() string {
	return "tenant_ip_whitelist"
}
