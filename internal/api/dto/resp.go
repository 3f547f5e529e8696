package dto

import (
	"time"

	"github.com/echodesk/echodesk-api/internal/domain"
)

type TenantResponse struct {
	ID                       string                  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SchemaName               string                  `json:"schema_name" example:"acme"`
	DomainURL                string                  `json:"domain_url" example:"acme.api.echodesk.ge"`
	Name                     string                  `json:"name" example:"Acme Support"`
	Description              string                  `json:"description,omitempty"`
	AdminEmail               string                  `json:"admin_email"`
	AdminName                string                  `json:"admin_name"`
	PreferredLanguage        string                  `json:"preferred_language"`
	FrontendURL              string                  `json:"frontend_url,omitempty"`
	DeploymentStatus         domain.DeploymentStatus `json:"deployment_status"`
	IsActive                 bool                    `json:"is_active"`
	IPWhitelistEnabled       bool                    `json:"ip_whitelist_enabled"`
	SuperuserBypassWhitelist bool                    `json:"superuser_bypass_whitelist"`
	CreatedAt                time.Time               `json:"created_at"`
	UpdatedAt                time.Time               `json:"updated_at"`
}

type PackageResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name" example:"professional"`
	DisplayName   string               `json:"display_name" example:"Professional"`
	Description   string               `json:"description,omitempty"`
	PricingModel  domain.PricingModel  `json:"pricing_model"`
	BillingPeriod domain.BillingPeriod `json:"billing_period"`
	PriceGEL      float64              `json:"price_gel"`
	MaxUsers      *int                 `json:"max_users"`

	// Capability flags keyed by feature key.
	Features map[domain.FeatureKey]bool `json:"features"`

	MaxWhatsAppMessages int `json:"max_whatsapp_messages"`
	MaxStorageGB        int `json:"max_storage_gb"`
}

type FeatureResponse struct {
	ID                string                 `json:"id"`
	Key               string                 `json:"key" example:"sip_calling"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description,omitempty"`
	Category          domain.FeatureCategory `json:"category"`
	PricePerUserGEL   float64                `json:"price_per_user_gel"`
	PriceUnlimitedGEL float64                `json:"price_unlimited_gel"`
	SortOrder         int                    `json:"sort_order"`
}

// SubscriptionInfoResponse is the billing summary a tenant admin sees.
type SubscriptionInfoResponse struct {
	ID               string              `json:"id"`
	Model            string              `json:"model" example:"package"`
	IsActive         bool                `json:"is_active"`
	IsTrial          bool                `json:"is_trial"`
	TrialEndsAt      *time.Time          `json:"trial_ends_at,omitempty"`
	Package          *PackageResponse    `json:"package,omitempty"`
	SelectedFeatures []FeatureResponse   `json:"selected_features,omitempty"`
	AgentCount       int                 `json:"agent_count"`
	MonthlyCost      float64             `json:"monthly_cost_gel"`
	Limits           []domain.LimitStatus `json:"limits"`
	NextBillingDate  *time.Time          `json:"next_billing_date,omitempty"`
}

// EntitlementsResponse lists the tenant's materialized entitlement state.
type EntitlementsResponse struct {
	Features    []string `json:"features"`
	Permissions []string `json:"permissions"`
}

// SyncResultResponse reports what a reconciliation run changed.
type SyncResultResponse struct {
	EnabledFeatures    []string `json:"enabled_features"`
	DisabledFeatures   []string `json:"disabled_features"`
	PermissionsGranted int      `json:"permissions_granted"`
}

type WhitelistEntryResponse struct {
	ID         string    `json:"id"`
	IPAddress  string    `json:"ip_address"`
	CIDRPrefix *int      `json:"cidr_prefix,omitempty"`
	Label      string    `json:"label,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type CurrentIPResponse struct {
	IPAddress string `json:"ip_address" example:"203.0.113.7"`
}
