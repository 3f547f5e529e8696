package domain

import (
	"encoding/json"
	"time"
)

// Default limits for feature-based subscriptions. Legacy packages carry their
// own tiered limits instead.
const (
	DefaultWhatsAppMessageLimit = 10000
	DefaultStorageLimitGB       = 100
)

type LimitKind string

const (
	LimitUsers    LimitKind = "users"
	LimitWhatsApp LimitKind = "whatsapp"
	LimitStorage  LimitKind = "storage"
)

// LimitStatus reports current usage against a subscription limit.
// A nil Limit means unlimited.
type LimitStatus struct {
	Kind         LimitKind `json:"kind"`
	Current      float64   `json:"current"`
	Limit        *float64  `json:"limit"`
	UsagePercent float64   `json:"usage_percentage"`
	WithinLimit  bool      `json:"within_limit"`
}

// TenantSubscription records what a tenant pays for. Exactly one of the two
// entitlement models applies at a time: a legacy package reference, or a
// non-empty set of selected catalog features priced per agent.
type TenantSubscription struct {
	ID        string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID  string   `gorm:"type:uuid;not null;uniqueIndex" json:"tenant_id"`
	PackageID *string  `gorm:"type:uuid" json:"package_id,omitempty"`
	Package   *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`

	SelectedFeatures []Feature `gorm:"many2many:subscription_features" json:"selected_features,omitempty"`
	AgentCount       int       `gorm:"not null;default:10" json:"agent_count"`

	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	StartsAt  time.Time  `gorm:"type:timestamp with time zone;not null" json:"starts_at"`
	ExpiresAt *time.Time `gorm:"type:timestamp with time zone" json:"expires_at,omitempty"`

	IsTrial     bool       `gorm:"not null;default:false" json:"is_trial"`
	TrialEndsAt *time.Time `gorm:"type:timestamp with time zone" json:"trial_ends_at,omitempty"`

	CurrentUsers         int     `gorm:"not null;default:0" json:"current_users"`
	WhatsAppMessagesUsed int     `gorm:"not null;default:0" json:"whatsapp_messages_used"`
	StorageUsedGB        float64 `gorm:"type:numeric(10,2);not null;default:0" json:"storage_used_gb"`

	LastBilledAt    *time.Time `gorm:"type:timestamp with time zone" json:"last_billed_at,omitempty"`
	NextBillingDate *time.Time `gorm:"type:timestamp with time zone" json:"next_billing_date,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TenantSubscription) TableName() string {
	return "tenant_subscriptions"
}

// IsFeatureBased reports whether entitlements come from the feature catalog
// rather than a legacy package.
func (s *TenantSubscription) IsFeatureBased() bool {
	return len(s.SelectedFeatures) > 0
}

// HasSelectedFeature reports whether an active catalog feature with the given
// key is part of this subscription.
func (s *TenantSubscription) HasSelectedFeature(key FeatureKey) bool {
	for _, f := range s.SelectedFeatures {
		if f.Key == string(key) && f.IsActive {
			return true
		}
	}
	return false
}

// MonthlyCost is the recurring charge: per-agent feature prices for the
// catalog model, flat or per-agent package price for the legacy model.
func (s *TenantSubscription) MonthlyCost() float64 {
	if s.IsFeatureBased() {
		var perAgent float64
		for _, f := range s.SelectedFeatures {
			perAgent += f.PricePerUserGEL
		}
		return perAgent * float64(s.AgentCount)
	}

	if s.Package != nil {
		if s.Package.PricingModel == PricingAgentBased {
			return s.Package.PriceGEL * float64(s.AgentCount)
		}
		return s.Package.PriceGEL
	}

	return 0
}

// UserLimit returns the applicable seat limit, nil meaning unlimited.
func (s *TenantSubscription) UserLimit() *int {
	if s.IsFeatureBased() {
		limit := s.AgentCount
		return &limit
	}
	if s.Package != nil {
		return s.Package.MaxUsers
	}
	return nil
}

func (s *TenantSubscription) CanAddUser() bool {
	limit := s.UserLimit()
	if limit == nil {
		return true
	}
	return s.CurrentUsers < *limit
}

// UsageEventType classifies usage log entries.
type UsageEventType string

const (
	UsageUserAdded       UsageEventType = "user_added"
	UsageUserRemoved     UsageEventType = "user_removed"
	UsageWhatsAppMessage UsageEventType = "whatsapp_message"
	UsageStorage         UsageEventType = "storage_usage"
	UsageFeatureUsed     UsageEventType = "feature_used"
)

// UsageLog tracks billable events per subscription. Old rows are archived to
// S3 and pruned by the billing worker.
type UsageLog struct {
	ID             string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SubscriptionID string          `gorm:"type:uuid;not null;index" json:"subscription_id"`
	TenantID       string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	EventType      UsageEventType  `gorm:"type:varchar(50);not null" json:"event_type"`
	Quantity       int             `gorm:"not null;default:1" json:"quantity"`
	Metadata       json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (UsageLog) TableName() string {
	return "usage_logs"
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentOrder tracks one charge against a tenant. The payment gateway
// callback flips Status; the billing worker rolls the subscription's next
// billing date for paid orders.
type PaymentOrder struct {
	ID         string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderID    string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"order_id"`
	TenantID   *string       `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	PackageID  *string       `gorm:"type:uuid" json:"package_id,omitempty"`
	Amount     float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency   string        `gorm:"type:varchar(3);default:'GEL'" json:"currency"`
	AgentCount int           `gorm:"not null;default:1" json:"agent_count"`
	Status     PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaidAt     *time.Time    `gorm:"type:timestamp with time zone" json:"paid_at,omitempty"`
	CreatedAt  time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
