package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/mocks"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

type EntitlementServiceTestSuite struct {
	suite.Suite
	mockRepo    *mocks.Repository
	mockEnt     *mocks.EntitlementRepository
	mockFeature *mocks.FeatureRepository
	service     *EntitlementService
}

func (s *EntitlementServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockEnt = new(mocks.EntitlementRepository)
	s.mockFeature = new(mocks.FeatureRepository)

	s.mockRepo.On("Entitlement").Return(s.mockEnt).Maybe()
	s.mockRepo.On("Feature").Return(s.mockFeature).Maybe()

	s.service = NewEntitlementService(s.mockRepo, logger.NewLogger("test"))
}

func TestEntitlementService(t *testing.T) {
	suite.Run(t, new(EntitlementServiceTestSuite))
}

// expectTransaction makes the mocked Transaction run its callback against the
// same mock, so the reconciliation body executes inline.
func (s *EntitlementServiceTestSuite) expectTransaction(ctx context.Context) {
	s.mockEnt.On("Transaction", ctx, mock.AnythingOfType("func(repository.EntitlementRepository) error")).
		Return(func(ctx context.Context, fn func(repository.EntitlementRepository) error) error {
			return fn(s.mockEnt)
		})
}

func packageSub() *domain.TenantSubscription {
	packageID := "pkg1"
	return &domain.TenantSubscription{
		ID:        "sub1",
		TenantID:  "tenant1",
		PackageID: &packageID,
		IsActive:  true,
	}
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_FeatureBasedIsNoop() {
	// Arrange
	sub := &domain.TenantSubscription{
		ID:               "sub1",
		TenantID:         "tenant1",
		SelectedFeatures: []domain.Feature{{ID: "f1", Key: "sip_calling", IsActive: true}},
	}

	// Act
	result, err := s.service.SyncTenantFeatures(context.Background(), sub)

	// Assert
	s.NoError(err)
	s.True(result.IsNoop())
	s.mockEnt.AssertNotCalled(s.T(), "Transaction", mock.Anything, mock.Anything)
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_GrantsNewFeaturesAndPermissions() {
	// Arrange
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{
		{FeatureID: "f1", Feature: &domain.Feature{ID: "f1", Name: "Ticket Management"}},
		{FeatureID: "f2", Feature: &domain.Feature{ID: "f2", Name: "SIP Calling"}},
	}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return([]domain.TenantFeature{}, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return([]domain.TenantPermission{}, nil)

	// p1 is shared by both features and must only be granted once.
	s.mockEnt.On("ListFeaturePermissions", ctx, "f1").Return([]domain.FeaturePermission{
		{FeatureID: "f1", PermissionID: "p1"},
	}, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f2").Return([]domain.FeaturePermission{
		{FeatureID: "f2", PermissionID: "p1"},
		{FeatureID: "f2", PermissionID: "p2"},
	}, nil)

	s.mockEnt.On("SaveTenantFeature", ctx, mock.AnythingOfType("*domain.TenantFeature")).Return(nil)
	s.mockEnt.On("SaveTenantPermission", ctx, mock.AnythingOfType("*domain.TenantPermission")).Return(nil)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.NoError(err)
	s.ElementsMatch([]string{"Ticket Management", "SIP Calling"}, result.EnabledFeatures)
	s.Empty(result.DisabledFeatures)
	s.Equal(2, result.PermissionsGranted)
	s.mockEnt.AssertNumberOfCalls(s.T(), "SaveTenantFeature", 2)
	s.mockEnt.AssertNumberOfCalls(s.T(), "SaveTenantPermission", 2)
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_SecondRunIsNoop() {
	// Arrange
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	customValue := json.RawMessage(`{"max": 5}`)

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{
		{FeatureID: "f1", CustomValue: customValue},
	}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return([]domain.TenantFeature{
		{TenantID: "tenant1", FeatureID: "f1", IsActive: true, CustomValue: customValue},
	}, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return([]domain.TenantPermission{
		{TenantID: "tenant1", PermissionID: "p1", IsActive: true},
	}, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f1").Return([]domain.FeaturePermission{
		{FeatureID: "f1", PermissionID: "p1"},
	}, nil)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.NoError(err)
	s.True(result.IsNoop())
	s.mockEnt.AssertNotCalled(s.T(), "SaveTenantFeature", mock.Anything, mock.Anything)
	s.mockEnt.AssertNotCalled(s.T(), "SaveTenantPermission", mock.Anything, mock.Anything)
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_ReactivatesDisabledFeature() {
	// Arrange
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	disabledAt := time.Now().Add(-24 * time.Hour)
	existing := []domain.TenantFeature{
		{TenantID: "tenant1", FeatureID: "f1", IsActive: false, DisabledAt: &disabledAt},
	}

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{
		{FeatureID: "f1"},
	}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return(existing, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return([]domain.TenantPermission{}, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f1").Return([]domain.FeaturePermission{}, nil)
	s.mockEnt.On("SaveTenantFeature", ctx, mock.AnythingOfType("*domain.TenantFeature")).Return(nil)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.NoError(err)
	s.Equal([]string{"f1"}, result.EnabledFeatures)
	s.True(existing[0].IsActive)
	s.Nil(existing[0].DisabledAt)
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_PropagatesCustomValue() {
	// Arrange
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	existing := []domain.TenantFeature{
		{TenantID: "tenant1", FeatureID: "f1", IsActive: true, CustomValue: json.RawMessage(`{"max": 5}`)},
	}

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{
		{FeatureID: "f1", CustomValue: json.RawMessage(`{"max": 10}`)},
	}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return(existing, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return([]domain.TenantPermission{}, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f1").Return([]domain.FeaturePermission{}, nil)
	s.mockEnt.On("SaveTenantFeature", ctx, mock.AnythingOfType("*domain.TenantFeature")).Return(nil)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.NoError(err)
	s.Empty(result.EnabledFeatures)
	s.JSONEq(`{"max": 10}`, string(existing[0].CustomValue))
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_DisablesStaleAndRevokesOrphans() {
	// Arrange: the package dropped f2. p1 is shared with the still-active f1,
	// p2 was granted only by f2.
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	existing := []domain.TenantFeature{
		{TenantID: "tenant1", FeatureID: "f1", IsActive: true},
		{TenantID: "tenant1", FeatureID: "f2", IsActive: true, Feature: &domain.Feature{ID: "f2", Name: "SIP Calling"}},
	}
	perms := []domain.TenantPermission{
		{TenantID: "tenant1", PermissionID: "p1", IsActive: true},
		{TenantID: "tenant1", PermissionID: "p2", IsActive: true},
	}

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{
		{FeatureID: "f1"},
	}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return(existing, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return(perms, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f1").Return([]domain.FeaturePermission{
		{FeatureID: "f1", PermissionID: "p1"},
	}, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f2").Return([]domain.FeaturePermission{
		{FeatureID: "f2", PermissionID: "p1"},
		{FeatureID: "f2", PermissionID: "p2"},
	}, nil)
	s.mockEnt.On("SaveTenantFeature", ctx, mock.AnythingOfType("*domain.TenantFeature")).Return(nil)
	s.mockEnt.On("SaveTenantPermission", ctx, mock.AnythingOfType("*domain.TenantPermission")).Return(nil)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.NoError(err)
	s.Equal([]string{"SIP Calling"}, result.DisabledFeatures)
	s.False(existing[1].IsActive)
	s.NotNil(existing[1].DisabledAt)

	// p1 survives because f1 still grants it; p2 is revoked.
	s.True(perms[0].IsActive)
	s.False(perms[1].IsActive)
	s.NotNil(perms[1].RevokedAt)
	s.mockEnt.AssertNumberOfCalls(s.T(), "SaveTenantPermission", 1)
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_DowngradeToEmptyPackage() {
	// Arrange
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	existing := []domain.TenantFeature{
		{TenantID: "tenant1", FeatureID: "f1", IsActive: true},
		{TenantID: "tenant1", FeatureID: "f2", IsActive: true},
	}
	perms := []domain.TenantPermission{
		{TenantID: "tenant1", PermissionID: "p1", IsActive: true},
	}

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return(existing, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return(perms, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f1").Return([]domain.FeaturePermission{
		{FeatureID: "f1", PermissionID: "p1"},
	}, nil)
	s.mockEnt.On("ListFeaturePermissions", ctx, "f2").Return([]domain.FeaturePermission{}, nil)
	s.mockEnt.On("SaveTenantFeature", ctx, mock.AnythingOfType("*domain.TenantFeature")).Return(nil)
	s.mockEnt.On("SaveTenantPermission", ctx, mock.AnythingOfType("*domain.TenantPermission")).Return(nil)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.NoError(err)
	s.Len(result.DisabledFeatures, 2)
	s.False(perms[0].IsActive)
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestSyncTenantFeatures_TransactionError() {
	// Arrange
	ctx := context.Background()
	sub := packageSub()
	s.expectTransaction(ctx)

	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return(nil, gorm.ErrInvalidDB)

	// Act
	result, err := s.service.SyncTenantFeatures(ctx, sub)

	// Assert
	s.Error(err)
	s.Nil(result)
	s.mockEnt.AssertNotCalled(s.T(), "SaveTenantFeature", mock.Anything, mock.Anything)
}

func (s *EntitlementServiceTestSuite) TestCheckTenantFeature() {
	// Arrange
	ctx := context.Background()
	s.mockEnt.On("HasActiveFeature", ctx, "tenant1", "sip_calling").Return(true, nil)

	// Act
	has, err := s.service.CheckTenantFeature(ctx, "tenant1", domain.FeatureSIPCalling)

	// Assert
	s.NoError(err)
	s.True(has)
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestCheckTenantPermission_UnknownKeyDenied() {
	// Arrange
	ctx := context.Background()
	s.mockFeature.On("GetPermissionByKey", ctx, "tickets.teleport").Return(nil, gorm.ErrRecordNotFound)

	// Act
	has, err := s.service.CheckTenantPermission(ctx, "tenant1", "tickets.teleport")

	// Assert
	s.NoError(err)
	s.False(has)
	s.mockEnt.AssertNotCalled(s.T(), "HasActivePermission", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntitlementServiceTestSuite) TestCheckTenantPermission_InactiveDenied() {
	// Arrange
	ctx := context.Background()
	s.mockFeature.On("GetPermissionByKey", ctx, "tickets.create").Return(&domain.Permission{
		ID: "p1", Key: "tickets.create", IsActive: false,
	}, nil)

	// Act
	has, err := s.service.CheckTenantPermission(ctx, "tenant1", "tickets.create")

	// Assert
	s.NoError(err)
	s.False(has)
	s.mockEnt.AssertNotCalled(s.T(), "HasActivePermission", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntitlementServiceTestSuite) TestCheckTenantPermission_Active() {
	// Arrange
	ctx := context.Background()
	s.mockFeature.On("GetPermissionByKey", ctx, "tickets.create").Return(&domain.Permission{
		ID: "p1", Key: "tickets.create", IsActive: true,
	}, nil)
	s.mockEnt.On("HasActivePermission", ctx, "tenant1", "tickets.create").Return(true, nil)

	// Act
	has, err := s.service.CheckTenantPermission(ctx, "tenant1", "tickets.create")

	// Assert
	s.NoError(err)
	s.True(has)
	s.mockEnt.AssertExpectations(s.T())
}

func (s *EntitlementServiceTestSuite) TestEntitlements_ActiveOnly() {
	// Arrange
	ctx := context.Background()
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return([]domain.TenantFeature{
		{FeatureID: "f1", IsActive: true, Feature: &domain.Feature{ID: "f1", Key: "ticket_management"}},
		{FeatureID: "f2", IsActive: false, Feature: &domain.Feature{ID: "f2", Key: "sip_calling"}},
	}, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return([]domain.TenantPermission{
		{PermissionID: "p1", IsActive: true, Permission: &domain.Permission{ID: "p1", Key: "tickets.create"}},
		{PermissionID: "p2", IsActive: false, Permission: &domain.Permission{ID: "p2", Key: "calls.place"}},
	}, nil)

	// Act
	features, permissions, err := s.service.Entitlements(ctx, "tenant1")

	// Assert
	s.NoError(err)
	s.Equal([]string{"ticket_management"}, features)
	s.Equal([]string{"tickets.create"}, permissions)
	s.mockEnt.AssertExpectations(s.T())
}
