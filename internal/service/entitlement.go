package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

// EntitlementService reconciles a tenant's materialized entitlement rows
// (tenant_features, tenant_permissions) with what their subscription says
// they should have.
type EntitlementService struct {
	repo   repository.Repository
	logger *logger.Logger
}

func NewEntitlementService(repo repository.Repository, log *logger.Logger) *EntitlementService {
	return &EntitlementService{
		repo:   repo,
		logger: log,
	}
}

// SyncTenantFeatures brings the tenant's entitlement rows in line with the
// subscription's package. The whole reconciliation runs in one transaction
// and is idempotent: a second run against unchanged inputs is a no-op.
//
// Feature-based subscriptions derive entitlements directly from their
// selected features at check time, so there is nothing to materialize.
//
// A permission is revoked only when no remaining active feature still grants
// it; a permission shared by two features survives the loss of one.
func (s *EntitlementService) SyncTenantFeatures(ctx context.Context, sub *domain.TenantSubscription) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		EnabledFeatures:  []string{},
		DisabledFeatures: []string{},
	}

	if sub.PackageID == nil {
		return result, nil
	}

	err := s.repo.Entitlement().Transaction(ctx, func(r repository.EntitlementRepository) error {
		now := time.Now()

		packageFeatures, err := r.ListPackageFeatures(ctx, *sub.PackageID)
		if err != nil {
			return err
		}

		existing, err := r.ListTenantFeatures(ctx, sub.TenantID)
		if err != nil {
			return err
		}
		tenantFeatures := make(map[string]*domain.TenantFeature, len(existing))
		for i := range existing {
			tenantFeatures[existing[i].FeatureID] = &existing[i]
		}

		tenantPerms, err := r.ListTenantPermissions(ctx, sub.TenantID)
		if err != nil {
			return err
		}
		permsByID := make(map[string]*domain.TenantPermission, len(tenantPerms))
		for i := range tenantPerms {
			permsByID[tenantPerms[i].PermissionID] = &tenantPerms[i]
		}

		packaged := make(map[string]bool, len(packageFeatures))
		activeFeatureIDs := make([]string, 0, len(packageFeatures))

		for i := range packageFeatures {
			pf := &packageFeatures[i]
			packaged[pf.FeatureID] = true
			activeFeatureIDs = append(activeFeatureIDs, pf.FeatureID)

			tf, exists := tenantFeatures[pf.FeatureID]
			if !exists {
				tf = &domain.TenantFeature{
					TenantID:    sub.TenantID,
					FeatureID:   pf.FeatureID,
					IsActive:    true,
					EnabledAt:   now,
					CustomValue: pf.CustomValue,
				}
				if err := r.SaveTenantFeature(ctx, tf); err != nil {
					return err
				}
				result.EnabledFeatures = append(result.EnabledFeatures, featureLabel(pf))
			} else {
				changed := false
				if !tf.IsActive {
					tf.IsActive = true
					tf.EnabledAt = now
					tf.DisabledAt = nil
					changed = true
					result.EnabledFeatures = append(result.EnabledFeatures, featureLabel(pf))
				}
				if !bytes.Equal(tf.CustomValue, pf.CustomValue) {
					tf.CustomValue = pf.CustomValue
					changed = true
				}
				if changed {
					if err := r.SaveTenantFeature(ctx, tf); err != nil {
						return err
					}
				}
			}

			granted, err := grantFeaturePermissions(ctx, r, sub.TenantID, pf.FeatureID, permsByID, now)
			if err != nil {
				return err
			}
			result.PermissionsGranted += granted
		}

		// Disable features the package no longer carries.
		var disabledFeatureIDs []string
		for i := range existing {
			tf := &existing[i]
			if !tf.IsActive || packaged[tf.FeatureID] {
				continue
			}
			disabledAt := now
			tf.IsActive = false
			tf.DisabledAt = &disabledAt
			if err := r.SaveTenantFeature(ctx, tf); err != nil {
				return err
			}
			result.DisabledFeatures = append(result.DisabledFeatures, tenantFeatureLabel(tf))
			disabledFeatureIDs = append(disabledFeatureIDs, tf.FeatureID)
		}

		if len(disabledFeatureIDs) == 0 {
			return nil
		}
		return revokeOrphanedPermissions(ctx, r, activeFeatureIDs, disabledFeatureIDs, permsByID, now)
	})
	if err != nil {
		return nil, err
	}

	if !result.IsNoop() {
		s.logger.Info("entitlements reconciled",
			zap.String("tenant_id", sub.TenantID),
			zap.Strings("enabled", result.EnabledFeatures),
			zap.Strings("disabled", result.DisabledFeatures),
			zap.Int("permissions_granted", result.PermissionsGranted))
	}
	return result, nil
}

// grantFeaturePermissions ensures every permission of a feature has an active
// tenant_permissions row. Only creations and reactivations count toward the
// granted total.
func grantFeaturePermissions(
	ctx context.Context,
	r repository.EntitlementRepository,
	tenantID, featureID string,
	permsByID map[string]*domain.TenantPermission,
	now time.Time,
) (int, error) {
	featurePerms, err := r.ListFeaturePermissions(ctx, featureID)
	if err != nil {
		return 0, err
	}

	granted := 0
	for _, fp := range featurePerms {
		grantedBy := featureID
		tp, exists := permsByID[fp.PermissionID]
		if !exists {
			tp = &domain.TenantPermission{
				TenantID:           tenantID,
				PermissionID:       fp.PermissionID,
				GrantedByFeatureID: &grantedBy,
				IsActive:           true,
				GrantedAt:          now,
			}
			if err := r.SaveTenantPermission(ctx, tp); err != nil {
				return granted, err
			}
			permsByID[fp.PermissionID] = tp
			granted++
			continue
		}
		if !tp.IsActive {
			tp.IsActive = true
			tp.RevokedAt = nil
			tp.GrantedAt = now
			tp.GrantedByFeatureID = &grantedBy
			if err := r.SaveTenantPermission(ctx, tp); err != nil {
				return granted, err
			}
			granted++
		}
	}
	return granted, nil
}

// revokeOrphanedPermissions deactivates permissions granted by the disabled
// features, except those still granted by a feature that remains active.
func revokeOrphanedPermissions(
	ctx context.Context,
	r repository.EntitlementRepository,
	activeFeatureIDs, disabledFeatureIDs []string,
	permsByID map[string]*domain.TenantPermission,
	now time.Time,
) error {
	protected := make(map[string]bool)
	for _, featureID := range activeFeatureIDs {
		featurePerms, err := r.ListFeaturePermissions(ctx, featureID)
		if err != nil {
			return err
		}
		for _, fp := range featurePerms {
			protected[fp.PermissionID] = true
		}
	}

	for _, featureID := range disabledFeatureIDs {
		featurePerms, err := r.ListFeaturePermissions(ctx, featureID)
		if err != nil {
			return err
		}
		for _, fp := range featurePerms {
			if protected[fp.PermissionID] {
				continue
			}
			tp, exists := permsByID[fp.PermissionID]
			if !exists || !tp.IsActive {
				continue
			}
			revokedAt := now
			tp.IsActive = false
			tp.RevokedAt = &revokedAt
			if err := r.SaveTenantPermission(ctx, tp); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckTenantFeature reports whether the tenant has an active materialized
// entitlement for the feature key.
func (s *EntitlementService) CheckTenantFeature(ctx context.Context, tenantID string, key domain.FeatureKey) (bool, error) {
	return s.repo.Entitlement().HasActiveFeature(ctx, tenantID, string(key))
}

// CheckTenantPermission reports whether the tenant's permission pool contains
// an active grant for the permission key. Unknown keys are logged and denied
// rather than treated as an error.
func (s *EntitlementService) CheckTenantPermission(ctx context.Context, tenantID, permissionKey string) (bool, error) {
	perm, err := s.repo.Feature().GetPermissionByKey(ctx, permissionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warnf("permission check for unknown key %q", permissionKey)
			return false, nil
		}
		return false, err
	}
	if !perm.IsActive {
		return false, nil
	}
	return s.repo.Entitlement().HasActivePermission(ctx, tenantID, permissionKey)
}

// Entitlements returns the tenant's active feature keys and permission keys.
func (s *EntitlementService) Entitlements(ctx context.Context, tenantID string) ([]string, []string, error) {
	features, err := s.repo.Entitlement().ListTenantFeatures(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	perms, err := s.repo.Entitlement().ListTenantPermissions(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	featureKeys := make([]string, 0, len(features))
	for i := range features {
		if features[i].IsActive && features[i].Feature != nil {
			featureKeys = append(featureKeys, features[i].Feature.Key)
		}
	}
	permissionKeys := make([]string, 0, len(perms))
	for i := range perms {
		if perms[i].IsActive && perms[i].Permission != nil {
			permissionKeys = append(permissionKeys, perms[i].Permission.Key)
		}
	}
	return featureKeys, permissionKeys, nil
}

func featureLabel(pf *domain.PackageFeature) string {
	if pf.Feature != nil {
		return pf.Feature.Name
	}
	return pf.FeatureID
}

func tenantFeatureLabel(tf *domain.TenantFeature) string {
	if tf.Feature != nil {
		return tf.Feature.Name
	}
	return tf.FeatureID
}
