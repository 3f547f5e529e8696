package domain

import (
	"time"
)

type PricingModel string

const (
	PricingAgentBased PricingModel = "agent"
	PricingCRMBased   PricingModel = "crm"
)

type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

// FeatureKey identifies a capability. The same key space is shared by the
// legacy boolean package flags and the feature catalog, so a capability check
// must consult whichever model the subscription uses.
type FeatureKey string

const (
	FeatureTicketManagement        FeatureKey = "ticket_management"
	FeatureEmailIntegration        FeatureKey = "email_integration"
	FeatureSIPCalling              FeatureKey = "sip_calling"
	FeatureFacebookIntegration     FeatureKey = "facebook_integration"
	FeatureInstagramIntegration    FeatureKey = "instagram_integration"
	FeatureWhatsAppIntegration     FeatureKey = "whatsapp_integration"
	FeatureAdvancedAnalytics       FeatureKey = "advanced_analytics"
	FeatureAPIAccess               FeatureKey = "api_access"
	FeatureCustomIntegrations      FeatureKey = "custom_integrations"
	FeaturePrioritySupport         FeatureKey = "priority_support"
	FeatureDedicatedAccountManager FeatureKey = "dedicated_account_manager"
)

// LegacyFeatureKeys lists every capability a legacy package can carry,
// in catalog display order.
var LegacyFeatureKeys = []FeatureKey{
	FeatureTicketManagement,
	FeatureEmailIntegration,
	FeatureSIPCalling,
	FeatureFacebookIntegration,
	FeatureInstagramIntegration,
	FeatureWhatsAppIntegration,
	FeatureAdvancedAnalytics,
	FeatureAPIAccess,
	FeatureCustomIntegrations,
	FeaturePrioritySupport,
	FeatureDedicatedAccountManager,
}

// Package is a legacy subscription plan: a fixed bundle of boolean capability
// flags plus tiered limits. New subscriptions use the feature catalog instead,
// but existing tenants still reference packages.
type Package struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name         string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	DisplayName  string        `gorm:"type:varchar(100);not null" json:"display_name"`
	Description  string        `gorm:"type:text" json:"description"`
	PricingModel PricingModel  `gorm:"type:varchar(10);default:'agent'" json:"pricing_model"`
	PriceGEL     float64       `gorm:"type:numeric(10,2);not null" json:"price_gel"`
	BillingPer   BillingPeriod `gorm:"column:billing_period;type:varchar(20);default:'monthly'" json:"billing_period"`

	// Limits. A nil MaxUsers means unlimited (agent-based packages).
	MaxUsers            *int `gorm:"type:integer" json:"max_users,omitempty"`
	MaxWhatsAppMessages int  `gorm:"not null" json:"max_whatsapp_messages"`
	MaxStorageGB        int  `gorm:"not null;default:5" json:"max_storage_gb"`

	// Legacy capability flags.
	TicketManagement        bool `gorm:"not null;default:true" json:"ticket_management"`
	EmailIntegration        bool `gorm:"not null;default:true" json:"email_integration"`
	SIPCalling              bool `gorm:"not null;default:false" json:"sip_calling"`
	FacebookIntegration     bool `gorm:"not null;default:false" json:"facebook_integration"`
	InstagramIntegration    bool `gorm:"not null;default:false" json:"instagram_integration"`
	WhatsAppIntegration     bool `gorm:"not null;default:false" json:"whatsapp_integration"`
	AdvancedAnalytics       bool `gorm:"not null;default:false" json:"advanced_analytics"`
	APIAccess               bool `gorm:"not null;default:false" json:"api_access"`
	CustomIntegrations      bool `gorm:"not null;default:false" json:"custom_integrations"`
	PrioritySupport         bool `gorm:"not null;default:false" json:"priority_support"`
	DedicatedAccountManager bool `gorm:"not null;default:false" json:"dedicated_account_manager"`

	IsHighlighted bool `gorm:"not null;default:false" json:"is_highlighted"`
	IsActive      bool `gorm:"not null;default:true" json:"is_active"`
	IsCustom      bool `gorm:"not null;default:false" json:"is_custom"`
	SortOrder     int  `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Package) TableName() string {
	return "packages"
}

// LegacyFeature reports whether this package carries the given capability.
// Keys outside the legacy flag set are an explicit miss, never a silent false
// for a typo: ok is false only for unknown keys.
func (p *Package) LegacyFeature(key FeatureKey) (enabled, ok bool) {
	switch key {
	case FeatureTicketManagement:
		return p.TicketManagement, true
	case FeatureEmailIntegration:
		return p.EmailIntegration, true
	case FeatureSIPCalling:
		return p.SIPCalling, true
	case FeatureFacebookIntegration:
		return p.FacebookIntegration, true
	case FeatureInstagramIntegration:
		return p.InstagramIntegration, true
	case FeatureWhatsAppIntegration:
		return p.WhatsAppIntegration, true
	case FeatureAdvancedAnalytics:
		return p.AdvancedAnalytics, true
	case FeatureAPIAccess:
		return p.APIAccess, true
	case FeatureCustomIntegrations:
		return p.CustomIntegrations, true
	case FeaturePrioritySupport:
		return p.PrioritySupport, true
	case FeatureDedicatedAccountManager:
		return p.DedicatedAccountManager, true
	}
	return false, false
}

// LegacyFeatureMap returns the full capability matrix of a legacy package.
func (p *Package) LegacyFeatureMap() map[FeatureKey]bool {
	m := make(map[FeatureKey]bool, len(LegacyFeatureKeys))
	for _, key := range LegacyFeatureKeys {
		enabled, _ := p.LegacyFeature(key)
		m[key] = enabled
	}
	return m
}
