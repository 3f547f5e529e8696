package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/mocks"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/internal/utils"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockRepo    *mocks.Repository
	mockSub     *mocks.SubscriptionRepository
	mockPkg     *mocks.PackageRepository
	mockFeature *mocks.FeatureRepository
	mockEnt     *mocks.EntitlementRepository
	mockUsage   *mocks.UsageLogRepository
	mockSQS     *mocks.SQSService
	service     *SubscriptionService
}

func (s *SubscriptionServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockSub = new(mocks.SubscriptionRepository)
	s.mockPkg = new(mocks.PackageRepository)
	s.mockFeature = new(mocks.FeatureRepository)
	s.mockEnt = new(mocks.EntitlementRepository)
	s.mockUsage = new(mocks.UsageLogRepository)
	s.mockSQS = new(mocks.SQSService)

	s.mockRepo.On("Subscription").Return(s.mockSub).Maybe()
	s.mockRepo.On("Package").Return(s.mockPkg).Maybe()
	s.mockRepo.On("Feature").Return(s.mockFeature).Maybe()
	s.mockRepo.On("Entitlement").Return(s.mockEnt).Maybe()
	s.mockRepo.On("UsageLog").Return(s.mockUsage).Maybe()

	log := logger.NewLogger("test")
	s.service = NewSubscriptionService(s.mockRepo, NewEntitlementService(s.mockRepo, log), s.mockSQS, log)
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}

func tenantCtx(tenant *domain.Tenant) context.Context {
	return context.WithValue(context.Background(), utils.TenantKey, tenant)
}

func acmeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:         "tenant1",
		SchemaName: "acme",
		DomainURL:  "acme.api.echodesk.ge",
		IsActive:   true,
	}
}

func (s *SubscriptionServiceTestSuite) TestHasFeature_PackageFlags() {
	// Arrange: the Professional plan sells SIP calling but not WhatsApp.
	ctx := tenantCtx(acmeTenant())
	packageID := "pkg1"
	sub := &domain.TenantSubscription{
		ID:        "sub1",
		TenantID:  "tenant1",
		PackageID: &packageID,
		Package: &domain.Package{
			ID:                  packageID,
			Name:                "professional",
			SIPCalling:          true,
			WhatsAppIntegration: false,
		},
		IsActive: true,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	hasSIP, err1 := s.service.HasFeature(ctx, domain.FeatureSIPCalling)
	hasWhatsApp, err2 := s.service.HasFeature(ctx, domain.FeatureWhatsAppIntegration)

	// Assert
	s.NoError(err1)
	s.NoError(err2)
	s.True(hasSIP)
	s.False(hasWhatsApp)
	s.mockSub.AssertExpectations(s.T())
}

func (s *SubscriptionServiceTestSuite) TestHasFeature_SelectedFeatures() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:       "sub1",
		TenantID: "tenant1",
		IsActive: true,
		SelectedFeatures: []domain.Feature{
			{ID: "f1", Key: "whatsapp_integration", IsActive: true},
		},
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	hasWhatsApp, err1 := s.service.HasFeature(ctx, domain.FeatureWhatsAppIntegration)
	hasSIP, err2 := s.service.HasFeature(ctx, domain.FeatureSIPCalling)

	// Assert
	s.NoError(err1)
	s.NoError(err2)
	s.True(hasWhatsApp)
	s.False(hasSIP)
}

func (s *SubscriptionServiceTestSuite) TestHasFeature_UnknownLegacyKey() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	packageID := "pkg1"
	sub := &domain.TenantSubscription{
		ID:        "sub1",
		TenantID:  "tenant1",
		PackageID: &packageID,
		Package:   &domain.Package{ID: packageID, TicketManagement: true},
		IsActive:  true,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	has, err := s.service.HasFeature(ctx, domain.FeatureKey("time_travel"))

	// Assert
	s.NoError(err)
	s.False(has)
}

func (s *SubscriptionServiceTestSuite) TestHasFeature_NoSubscription() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(nil, gorm.ErrRecordNotFound)

	// Act
	has, err := s.service.HasFeature(ctx, domain.FeatureSIPCalling)

	// Assert
	s.NoError(err)
	s.False(has)
}

func (s *SubscriptionServiceTestSuite) TestHasFeature_InactiveSubscription() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:       "sub1",
		TenantID: "tenant1",
		IsActive: false,
		SelectedFeatures: []domain.Feature{
			{ID: "f1", Key: "sip_calling", IsActive: true},
		},
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	has, err := s.service.HasFeature(ctx, domain.FeatureSIPCalling)

	// Assert
	s.NoError(err)
	s.False(has)
}

func (s *SubscriptionServiceTestSuite) TestHasFeature_PublicSchema() {
	// Arrange
	ctx := tenantCtx(domain.PublicTenant("echodesk.ge"))

	// Act
	has, err := s.service.HasFeature(ctx, domain.FeatureSIPCalling)

	// Assert
	s.NoError(err)
	s.False(has)
	s.mockSub.AssertNotCalled(s.T(), "GetByTenantID", mock.Anything, mock.Anything)
}

func (s *SubscriptionServiceTestSuite) TestCheckLimit_Users() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	maxUsers := 10
	packageID := "pkg1"
	sub := &domain.TenantSubscription{
		ID:           "sub1",
		TenantID:     "tenant1",
		PackageID:    &packageID,
		Package:      &domain.Package{ID: packageID, MaxUsers: &maxUsers},
		IsActive:     true,
		CurrentUsers: 7,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	status, err := s.service.CheckLimit(ctx, domain.LimitUsers)

	// Assert
	s.NoError(err)
	s.Equal(domain.LimitUsers, status.Kind)
	s.Equal(7.0, status.Current)
	s.Equal(10.0, *status.Limit)
	s.Equal(70.0, status.UsagePercent)
	s.True(status.WithinLimit)
}

func (s *SubscriptionServiceTestSuite) TestCheckLimit_UnlimitedUsers() {
	// Arrange: agent-based packages carry no seat cap.
	ctx := tenantCtx(acmeTenant())
	packageID := "pkg1"
	sub := &domain.TenantSubscription{
		ID:           "sub1",
		TenantID:     "tenant1",
		PackageID:    &packageID,
		Package:      &domain.Package{ID: packageID},
		IsActive:     true,
		CurrentUsers: 5000,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	status, err := s.service.CheckLimit(ctx, domain.LimitUsers)

	// Assert
	s.NoError(err)
	s.Nil(status.Limit)
	s.True(status.WithinLimit)
	s.Zero(status.UsagePercent)
}

func (s *SubscriptionServiceTestSuite) TestCheckLimit_FeatureBasedDefaults() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:       "sub1",
		TenantID: "tenant1",
		IsActive: true,
		SelectedFeatures: []domain.Feature{
			{ID: "f1", Key: "whatsapp_integration", IsActive: true},
		},
		WhatsAppMessagesUsed: 2500,
		StorageUsedGB:        100,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	whatsapp, err1 := s.service.CheckLimit(ctx, domain.LimitWhatsApp)
	storage, err2 := s.service.CheckLimit(ctx, domain.LimitStorage)

	// Assert
	s.NoError(err1)
	s.Equal(float64(domain.DefaultWhatsAppMessageLimit), *whatsapp.Limit)
	s.Equal(25.0, whatsapp.UsagePercent)
	s.True(whatsapp.WithinLimit)

	s.NoError(err2)
	s.Equal(float64(domain.DefaultStorageLimitGB), *storage.Limit)
	s.False(storage.WithinLimit)
}

func (s *SubscriptionServiceTestSuite) TestCheckLimit_NoActiveSubscription() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(nil, gorm.ErrRecordNotFound)

	// Act
	status, err := s.service.CheckLimit(ctx, domain.LimitUsers)

	// Assert
	s.ErrorIs(err, ErrNoActiveSubscription)
	s.Nil(status)
}

func (s *SubscriptionServiceTestSuite) TestCheckLimit_UnknownKind() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{ID: "sub1", TenantID: "tenant1", IsActive: true}
	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	status, err := s.service.CheckLimit(ctx, domain.LimitKind("bandwidth"))

	// Assert
	s.ErrorIs(err, ErrUnknownLimitKind)
	s.Nil(status)
}

func (s *SubscriptionServiceTestSuite) TestInfo_FeatureBased() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:         "sub1",
		TenantID:   "tenant1",
		IsActive:   true,
		AgentCount: 4,
		SelectedFeatures: []domain.Feature{
			{ID: "f1", Key: "ticket_management", Name: "Ticket Management", PricePerUserGEL: 10, IsActive: true},
		},
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	info, err := s.service.Info(ctx)

	// Assert
	s.NoError(err)
	s.Equal("features", info.Model)
	s.Nil(info.Package)
	s.Len(info.SelectedFeatures, 1)
	s.Equal(40.0, info.MonthlyCost)
	s.Len(info.Limits, 3)
}

func (s *SubscriptionServiceTestSuite) TestInfo_NoSubscription() {
	// Arrange
	ctx := tenantCtx(domain.PublicTenant("echodesk.ge"))

	// Act
	info, err := s.service.Info(ctx)

	// Assert
	s.ErrorIs(err, ErrNoSubscription)
	s.Nil(info)
}

func (s *SubscriptionServiceTestSuite) TestUpdateSubscription_RejectsAmbiguousModel() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{ID: "sub1", TenantID: "tenant1", IsActive: true}
	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	packageName := "professional"

	// Act: neither model, then both at once.
	_, errNeither := s.service.UpdateSubscription(ctx, dto.UpdateSubscriptionRequest{})
	_, errBoth := s.service.UpdateSubscription(ctx, dto.UpdateSubscriptionRequest{
		PackageName: &packageName,
		FeatureKeys: []string{"sip_calling"},
	})

	// Assert
	s.ErrorIs(errNeither, ErrInvalidSubscription)
	s.ErrorIs(errBoth, ErrInvalidSubscription)
	s.mockSub.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *SubscriptionServiceTestSuite) TestUpdateSubscription_SwitchToPackage() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:       "sub1",
		TenantID: "tenant1",
		IsActive: true,
		SelectedFeatures: []domain.Feature{
			{ID: "f1", Key: "sip_calling", IsActive: true},
		},
	}
	pkg := &domain.Package{ID: "pkg1", Name: "professional", PriceGEL: 100}
	packageName := "professional"

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)
	s.mockPkg.On("GetByName", ctx, "professional").Return(pkg, nil)
	s.mockSub.On("ReplaceSelectedFeatures", ctx, sub, []domain.Feature(nil)).Return(nil)
	s.mockSub.On("Save", ctx, sub).Return(nil)

	// Reconciliation runs inline and finds nothing to change.
	s.mockEnt.On("Transaction", ctx, mock.AnythingOfType("func(repository.EntitlementRepository) error")).
		Return(func(ctx context.Context, fn func(repository.EntitlementRepository) error) error {
			return fn(s.mockEnt)
		})
	s.mockEnt.On("ListPackageFeatures", ctx, "pkg1").Return([]domain.PackageFeature{}, nil)
	s.mockEnt.On("ListTenantFeatures", ctx, "tenant1").Return([]domain.TenantFeature{}, nil)
	s.mockEnt.On("ListTenantPermissions", ctx, "tenant1").Return([]domain.TenantPermission{}, nil)

	// Act
	info, err := s.service.UpdateSubscription(ctx, dto.UpdateSubscriptionRequest{PackageName: &packageName})

	// Assert
	s.NoError(err)
	s.Equal("package", info.Model)
	s.Equal("pkg1", *sub.PackageID)
	s.Empty(sub.SelectedFeatures)
	s.mockSub.AssertExpectations(s.T())
	s.mockEnt.AssertExpectations(s.T())
}

func (s *SubscriptionServiceTestSuite) TestUpdateSubscription_SwitchToFeatures() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	packageID := "pkg1"
	sub := &domain.TenantSubscription{
		ID:        "sub1",
		TenantID:  "tenant1",
		PackageID: &packageID,
		Package:   &domain.Package{ID: packageID},
		IsActive:  true,
	}
	features := []domain.Feature{
		{ID: "f1", Key: "sip_calling", PricePerUserGEL: 15, IsActive: true},
		{ID: "f2", Key: "whatsapp_integration", PricePerUserGEL: 20, IsActive: true},
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)
	s.mockFeature.On("GetByKeys", ctx, []string{"sip_calling", "whatsapp_integration"}).Return(features, nil)
	s.mockSub.On("ReplaceSelectedFeatures", ctx, sub, features).Return(nil)
	s.mockSub.On("Save", ctx, sub).Return(nil)

	agentCount := 6

	// Act
	info, err := s.service.UpdateSubscription(ctx, dto.UpdateSubscriptionRequest{
		FeatureKeys: []string{"sip_calling", "whatsapp_integration"},
		AgentCount:  &agentCount,
	})

	// Assert
	s.NoError(err)
	s.Equal("features", info.Model)
	s.Nil(sub.PackageID)
	s.Equal(6, sub.AgentCount)
	s.Equal(210.0, info.MonthlyCost)
	// Nothing is materialized for the catalog model.
	s.mockEnt.AssertNotCalled(s.T(), "Transaction", mock.Anything, mock.Anything)
	s.mockSub.AssertExpectations(s.T())
}

func (s *SubscriptionServiceTestSuite) TestUpdateSubscription_UnknownFeatureKey() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{ID: "sub1", TenantID: "tenant1", IsActive: true}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)
	s.mockFeature.On("GetByKeys", ctx, []string{"sip_calling", "time_travel"}).Return([]domain.Feature{
		{ID: "f1", Key: "sip_calling", IsActive: true},
	}, nil)

	// Act
	info, err := s.service.UpdateSubscription(ctx, dto.UpdateSubscriptionRequest{
		FeatureKeys: []string{"sip_calling", "time_travel"},
	})

	// Assert
	s.ErrorIs(err, ErrFeatureNotFound)
	s.Nil(info)
	s.mockSub.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *SubscriptionServiceTestSuite) TestUpdateSubscription_SyncFailureQueuesRetry() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{ID: "sub1", TenantID: "tenant1", IsActive: true}
	pkg := &domain.Package{ID: "pkg1", Name: "professional"}
	packageName := "professional"

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)
	s.mockPkg.On("GetByName", ctx, "professional").Return(pkg, nil)
	s.mockSub.On("ReplaceSelectedFeatures", ctx, sub, []domain.Feature(nil)).Return(nil)
	s.mockSub.On("Save", ctx, sub).Return(nil)
	s.mockEnt.On("Transaction", ctx, mock.AnythingOfType("func(repository.EntitlementRepository) error")).
		Return(gorm.ErrInvalidTransaction)
	s.mockSQS.On("SendSyncMessage", ctx, "tenant1", "sub1", mock.AnythingOfType("string")).Return(nil)

	// Act
	info, err := s.service.UpdateSubscription(ctx, dto.UpdateSubscriptionRequest{PackageName: &packageName})

	// Assert: the save sticks, the failure is surfaced and queued for retry.
	s.Error(err)
	s.Nil(info)
	s.mockSQS.AssertExpectations(s.T())
	s.mockSub.AssertExpectations(s.T())
}

func (s *SubscriptionServiceTestSuite) TestResyncTenant_InactiveSubscription() {
	// Arrange
	ctx := context.Background()
	packageID := "pkg1"
	sub := &domain.TenantSubscription{ID: "sub1", TenantID: "tenant1", PackageID: &packageID, IsActive: false}
	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)

	// Act
	result, err := s.service.ResyncTenant(ctx, "tenant1")

	// Assert
	s.NoError(err)
	s.True(result.IsNoop())
	s.mockEnt.AssertNotCalled(s.T(), "Transaction", mock.Anything, mock.Anything)
}

func (s *SubscriptionServiceTestSuite) TestResyncTenant_NotFound() {
	// Arrange
	ctx := context.Background()
	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(nil, gorm.ErrRecordNotFound)

	// Act
	result, err := s.service.ResyncTenant(ctx, "tenant1")

	// Assert
	s.ErrorIs(err, ErrNoSubscription)
	s.Nil(result)
}

func (s *SubscriptionServiceTestSuite) TestRecordUsage_WhatsAppMessage() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:                   "sub1",
		TenantID:             "tenant1",
		IsActive:             true,
		WhatsAppMessagesUsed: 41,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)
	s.mockSub.On("Save", ctx, sub).Return(nil)
	s.mockUsage.On("Create", ctx, mock.MatchedBy(func(log *domain.UsageLog) bool {
		return log.SubscriptionID == "sub1" &&
			log.TenantID == "tenant1" &&
			log.EventType == domain.UsageWhatsAppMessage &&
			log.Quantity == 1
	})).Return(nil)

	// Act
	err := s.service.RecordUsage(ctx, domain.UsageWhatsAppMessage, 0)

	// Assert
	s.NoError(err)
	s.Equal(42, sub.WhatsAppMessagesUsed)
	s.mockSub.AssertExpectations(s.T())
	s.mockUsage.AssertExpectations(s.T())
}

func (s *SubscriptionServiceTestSuite) TestRecordUsage_UserRemovedClampsAtZero() {
	// Arrange
	ctx := tenantCtx(acmeTenant())
	sub := &domain.TenantSubscription{
		ID:           "sub1",
		TenantID:     "tenant1",
		IsActive:     true,
		CurrentUsers: 2,
	}

	s.mockSub.On("GetByTenantID", ctx, "tenant1").Return(sub, nil)
	s.mockSub.On("Save", ctx, sub).Return(nil)
	s.mockUsage.On("Create", ctx, mock.AnythingOfType("*domain.UsageLog")).Return(nil)

	// Act
	err := s.service.RecordUsage(ctx, domain.UsageUserRemoved, 5)

	// Assert
	s.NoError(err)
	s.Equal(0, sub.CurrentUsers)
}

func (s *SubscriptionServiceTestSuite) TestRecordUsage_PublicSchema() {
	// Arrange
	ctx := tenantCtx(domain.PublicTenant("echodesk.ge"))

	// Act
	err := s.service.RecordUsage(ctx, domain.UsageUserAdded, 1)

	// Assert
	s.ErrorIs(err, ErrNoSubscription)
	s.mockSub.AssertNotCalled(s.T(), "GetByTenantID", mock.Anything, mock.Anything)
}
