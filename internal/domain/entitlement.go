package domain

import (
	"encoding/json"
	"time"
)

// TenantFeature is the materialized entitlement state: which catalog features
// a tenant currently holds. It is kept in sync with the tenant's subscription
// by the entitlement service and queried at request time.
type TenantFeature struct {
	ID          string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_feature" json:"tenant_id"`
	FeatureID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_feature" json:"feature_id"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	EnabledAt   time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"enabled_at"`
	DisabledAt  *time.Time      `gorm:"type:timestamp with time zone" json:"disabled_at,omitempty"`
	CustomValue json.RawMessage `gorm:"type:jsonb" json:"custom_value,omitempty"`
	Feature     *Feature        `gorm:"foreignKey:FeatureID" json:"feature,omitempty"`
}

func (TenantFeature) TableName() string {
	return "tenant_features"
}

// TenantPermission is the pool of permissions a tenant's admins may grant to
// their users. Rows are created when a feature granting the permission is
// enabled and revoked only when no active feature still grants it.
type TenantPermission struct {
	ID                 string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID           string      `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_permission" json:"tenant_id"`
	PermissionID       string      `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_permission" json:"permission_id"`
	GrantedByFeatureID *string     `gorm:"type:uuid" json:"granted_by_feature_id,omitempty"`
	IsActive           bool        `gorm:"not null;default:true" json:"is_active"`
	GrantedAt          time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"granted_at"`
	RevokedAt          *time.Time  `gorm:"type:timestamp with time zone" json:"revoked_at,omitempty"`
	Permission         *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}

func (TenantPermission) TableName() string {
	return "tenant_permissions"
}

// SyncResult summarizes one entitlement reconciliation run.
type SyncResult struct {
	EnabledFeatures    []string `json:"enabled_features"`
	DisabledFeatures   []string `json:"disabled_features"`
	PermissionsGranted int      `json:"permissions_granted"`
}

func (r *SyncResult) IsNoop() bool {
	return len(r.EnabledFeatures) == 0 && len(r.DisabledFeatures) == 0 && r.PermissionsGranted == 0
}
