package dto

import (
	"github.com/echodesk/echodesk-api/internal/domain"
)

// FromTenant converts a Tenant domain model to a TenantResponse DTO
func FromTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:                       t.ID,
		SchemaName:               t.SchemaName,
		DomainURL:                t.DomainURL,
		Name:                     t.Name,
		Description:              t.Description,
		AdminEmail:               t.AdminEmail,
		AdminName:                t.AdminName,
		PreferredLanguage:        t.PreferredLanguage,
		FrontendURL:              t.FrontendURL,
		DeploymentStatus:         t.DeploymentStatus,
		IsActive:                 t.IsActive,
		IPWhitelistEnabled:       t.IPWhitelistEnabled,
		SuperuserBypassWhitelist: t.SuperuserBypassWhitelist,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}

// FromPackage converts a Package domain model to a PackageResponse DTO
func FromPackage(p *domain.Package) *PackageResponse {
	var maxUsers *int
	if p.MaxUsers != nil {
		v := *p.MaxUsers
		maxUsers = &v
	}
	return &PackageResponse{
		ID:                  p.ID,
		Name:                p.Name,
		DisplayName:         p.DisplayName,
		Description:         p.Description,
		PricingModel:        p.PricingModel,
		BillingPeriod:       p.BillingPer,
		PriceGEL:            p.PriceGEL,
		MaxUsers:            maxUsers,
		Features:            p.LegacyFeatureMap(),
		MaxWhatsAppMessages: p.MaxWhatsAppMessages,
		MaxStorageGB:        p.MaxStorageGB,
	}
}

// FromFeature converts a Feature domain model to a FeatureResponse DTO
func FromFeature(f *domain.Feature) *FeatureResponse {
	return &FeatureResponse{
		ID:                f.ID,
		Key:               f.Key,
		Name:              f.Name,
		Description:       f.Description,
		Category:          f.Category,
		PricePerUserGEL:   f.PricePerUserGEL,
		PriceUnlimitedGEL: f.PriceUnlimitedGEL,
		SortOrder:         f.SortOrder,
	}
}

// FromSyncResult converts a SyncResult to its response DTO
func FromSyncResult(r *domain.SyncResult) *SyncResultResponse {
	return &SyncResultResponse{
		EnabledFeatures:    r.EnabledFeatures,
		DisabledFeatures:   r.DisabledFeatures,
		PermissionsGranted: r.PermissionsGranted,
	}
}

// FromWhitelistEntry converts a TenantIPWhitelist domain model to its DTO
func FromWhitelistEntry(e *domain.TenantIPWhitelist) *WhitelistEntryResponse {
	return &WhitelistEntryResponse{
		ID:         e.ID,
		IPAddress:  e.IPAddress,
		CIDRPrefix: e.CIDRPrefix,
		Label:      e.Label,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}
