package dto

type RegisterTenantRequest struct {
	Name              string `json:"name" binding:"required" example:"Acme Support"`
	Description       string `json:"description" example:"Acme's customer support desk"`
	SchemaName        string `json:"schema_name" binding:"required" example:"acme"`
	DomainURL         string `json:"domain_url" example:"support.acme.com"`
	AdminEmail        string `json:"admin_email" binding:"required,email" example:"admin@acme.com"`
	AdminName         string `json:"admin_name" binding:"required" example:"Jane Admin"`
	PreferredLanguage string `json:"preferred_language" example:"en"`
	FrontendURL       string `json:"frontend_url" example:"https://acme.echodesk.ge"`

	// Exactly one of PackageName and FeatureKeys must be set.
	PackageName *string  `json:"package_name,omitempty" example:"professional"`
	FeatureKeys []string `json:"feature_keys,omitempty"`
	AgentCount  int      `json:"agent_count" example:"10"`
}

type UpdateTenantRequest struct {
	Name                     *string `json:"name,omitempty"`
	Description              *string `json:"description,omitempty"`
	DomainURL                *string `json:"domain_url,omitempty"`
	FrontendURL              *string `json:"frontend_url,omitempty"`
	PreferredLanguage        *string `json:"preferred_language,omitempty"`
	IsActive                 *bool   `json:"is_active,omitempty"`
	IPWhitelistEnabled       *bool   `json:"ip_whitelist_enabled,omitempty"`
	SuperuserBypassWhitelist *bool   `json:"superuser_bypass_whitelist,omitempty"`
}

// UpdateSubscriptionRequest switches a tenant between the legacy package
// model and the feature catalog model. Exactly one of PackageName and
// FeatureKeys must be set.
type UpdateSubscriptionRequest struct {
	PackageName *string  `json:"package_name,omitempty" example:"professional"`
	FeatureKeys []string `json:"feature_keys,omitempty"`
	AgentCount  *int     `json:"agent_count,omitempty" example:"15"`
}

type AddWhitelistEntryRequest struct {
	IPAddress  string `json:"ip_address" binding:"required" example:"203.0.113.7"`
	CIDRPrefix *int   `json:"cidr_prefix,omitempty" example:"24"`
	Label      string `json:"label" example:"office VPN"`
}

type RecordUsageRequest struct {
	Quantity int `json:"quantity" example:"1"`
}
