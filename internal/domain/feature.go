package domain

import (
	"encoding/json"
	"time"
)

type FeatureCategory string

const (
	CategoryCore          FeatureCategory = "core"
	CategoryIntegration   FeatureCategory = "integration"
	CategoryAnalytics     FeatureCategory = "analytics"
	CategoryCommunication FeatureCategory = "communication"
	CategorySupport       FeatureCategory = "support"
	CategoryLimits        FeatureCategory = "limits"
)

// Feature is a catalog entry for the a la carte subscription model. Each
// feature is priced per seat (agent-based) or flat (unlimited).
type Feature struct {
	ID                string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Key               string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Name              string          `gorm:"type:varchar(100);not null" json:"name"`
	Description       string          `gorm:"type:text" json:"description,omitempty"`
	Category          FeatureCategory `gorm:"type:varchar(20);default:'core'" json:"category"`
	PricePerUserGEL   float64         `gorm:"type:numeric(10,2);not null;default:0" json:"price_per_user_gel"`
	PriceUnlimitedGEL float64         `gorm:"type:numeric(10,2);not null;default:0" json:"price_unlimited_gel"`
	Icon              string          `gorm:"type:varchar(50)" json:"icon,omitempty"`
	SortOrder         int             `gorm:"not null;default:0" json:"sort_order"`
	IsActive          bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Feature) TableName() string {
	return "features"
}

// Permission is a granular action a feature can grant, keyed like
// "tickets.create" and grouped by module.
type Permission struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Module      string    `gorm:"type:varchar(50);not null" json:"module"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

// FeaturePermission links a feature to the permissions it grants.
type FeaturePermission struct {
	ID           string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	FeatureID    string      `gorm:"type:uuid;not null;uniqueIndex:idx_feature_permission" json:"feature_id"`
	PermissionID string      `gorm:"type:uuid;not null;uniqueIndex:idx_feature_permission" json:"permission_id"`
	IsRequired   bool        `gorm:"not null;default:true" json:"is_required"`
	Feature      *Feature    `gorm:"foreignKey:FeatureID" json:"feature,omitempty"`
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}

func (FeaturePermission) TableName() string {
	return "feature_permissions"
}

// PackageFeature links a package to a catalog feature, optionally overriding
// the feature's default configuration for that package.
type PackageFeature struct {
	ID            string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PackageID     string          `gorm:"type:uuid;not null;uniqueIndex:idx_package_feature" json:"package_id"`
	FeatureID     string          `gorm:"type:uuid;not null;uniqueIndex:idx_package_feature" json:"feature_id"`
	CustomValue   json.RawMessage `gorm:"type:jsonb" json:"custom_value,omitempty"`
	IsHighlighted bool            `gorm:"not null;default:false" json:"is_highlighted"`
	SortOrder     int             `gorm:"not null;default:0" json:"sort_order"`
	Feature       *Feature        `gorm:"foreignKey:FeatureID" json:"feature,omitempty"`
}

func (PackageFeature) TableName() string {
	return "package_features"
}
