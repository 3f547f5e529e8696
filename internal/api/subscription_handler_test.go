package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/utils"
)

type SubscriptionHandlerTestSuite struct {
	suite.Suite
	mockService      *MockSubscriptionService
	mockEntitlements *MockEntitlementReader
	handler          *SubscriptionHandler
}

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Info(ctx context.Context) (*dto.SubscriptionInfoResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubscriptionInfoResponse), args.Error(1)
}

func (m *MockSubscriptionService) UpdateSubscription(ctx context.Context, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionInfoResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubscriptionInfoResponse), args.Error(1)
}

func (m *MockSubscriptionService) CheckLimit(ctx context.Context, kind domain.LimitKind) (*domain.LimitStatus, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LimitStatus), args.Error(1)
}

func (m *MockSubscriptionService) RecordUsage(ctx context.Context, eventType domain.UsageEventType, quantity int) error {
	args := m.Called(ctx, eventType, quantity)
	return args.Error(0)
}

type MockEntitlementReader struct {
	mock.Mock
}

func (m *MockEntitlementReader) Entitlements(ctx context.Context, tenantID string) ([]string, []string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func (s *SubscriptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockSubscriptionService)
	s.mockEntitlements = new(MockEntitlementReader)
	s.handler = NewSubscriptionHandler(s.mockService, s.mockEntitlements)
}

func TestSubscriptionHandler(t *testing.T) {
	suite.Run(t, new(SubscriptionHandlerTestSuite))
}

func (s *SubscriptionHandlerTestSuite) TestGetSubscription_Success() {
	// Arrange
	expected := &dto.SubscriptionInfoResponse{
		ID:          "sub1",
		Model:       "package",
		IsActive:    true,
		AgentCount:  10,
		MonthlyCost: 500,
	}

	s.mockService.On("Info", mock.Anything).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subscription", nil)

	// Act
	s.handler.GetSubscription(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.SubscriptionInfoResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("sub1", response.ID)
	s.Equal("package", response.Model)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestGetSubscription_NoSubscription() {
	// Arrange
	s.mockService.On("Info", mock.Anything).Return(nil, service.ErrNoSubscription)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subscription", nil)

	// Act
	s.handler.GetSubscription(c)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *SubscriptionHandlerTestSuite) TestUpdateSubscription_AmbiguousModel() {
	// Arrange
	packageName := "professional"
	req := dto.UpdateSubscriptionRequest{
		PackageName: &packageName,
		FeatureKeys: []string{"sip_calling"},
	}

	s.mockService.On("UpdateSubscription", mock.Anything, req).Return(nil, service.ErrInvalidSubscription)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/subscription", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.UpdateSubscription(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestGetLimit_Success() {
	// Arrange
	limit := 10000.0
	s.mockService.On("CheckLimit", mock.Anything, domain.LimitWhatsApp).Return(&domain.LimitStatus{
		Kind:         domain.LimitWhatsApp,
		Current:      2500,
		Limit:        &limit,
		UsagePercent: 25,
		WithinLimit:  true,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subscription/limits/whatsapp", nil)
	c.Params = gin.Params{{Key: "kind", Value: "whatsapp"}}

	// Act
	s.handler.GetLimit(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response domain.LimitStatus
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal(domain.LimitWhatsApp, response.Kind)
	s.Equal(25.0, response.UsagePercent)
}

func (s *SubscriptionHandlerTestSuite) TestGetLimit_UnknownKind() {
	// Arrange
	s.mockService.On("CheckLimit", mock.Anything, domain.LimitKind("bandwidth")).Return(nil, service.ErrUnknownLimitKind)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subscription/limits/bandwidth", nil)
	c.Params = gin.Params{{Key: "kind", Value: "bandwidth"}}

	// Act
	s.handler.GetLimit(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SubscriptionHandlerTestSuite) TestRecordWhatsAppUsage_DefaultQuantity() {
	// Arrange: an empty body counts a single message.
	s.mockService.On("RecordUsage", mock.Anything, domain.UsageWhatsAppMessage, 1).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/usage/whatsapp", nil)

	// Act
	s.handler.RecordWhatsAppUsage(c)
	c.Writer.WriteHeaderNow()

	// Assert
	s.Equal(http.StatusAccepted, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestRecordUserAdded_ExplicitQuantity() {
	// Arrange
	s.mockService.On("RecordUsage", mock.Anything, domain.UsageUserAdded, 3).Return(nil)

	body := []byte(`{"quantity": 3}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/usage/users", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.RecordUserAdded(c)
	c.Writer.WriteHeaderNow()

	// Assert
	s.Equal(http.StatusAccepted, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestRecordUserRemoved() {
	// Arrange
	s.mockService.On("RecordUsage", mock.Anything, domain.UsageUserRemoved, 1).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/usage/users", nil)

	// Act
	s.handler.RecordUserRemoved(c)
	c.Writer.WriteHeaderNow()

	// Assert
	s.Equal(http.StatusAccepted, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestGetEntitlements_Success() {
	// Arrange
	s.mockEntitlements.On("Entitlements", mock.Anything, "tenant1").
		Return([]string{"ticket_management"}, []string{"tickets.create"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/entitlements", nil)
	c.Set(string(utils.TenantKey), &domain.Tenant{ID: "tenant1", SchemaName: "acme", IsActive: true})

	// Act
	s.handler.GetEntitlements(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.EntitlementsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal([]string{"ticket_management"}, response.Features)
	s.Equal([]string{"tickets.create"}, response.Permissions)
	s.mockEntitlements.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestGetEntitlements_PublicSchema() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/entitlements", nil)
	c.Set(string(utils.TenantKey), domain.PublicTenant("echodesk.ge"))

	// Act
	s.handler.GetEntitlements(c)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
	s.mockEntitlements.AssertNotCalled(s.T(), "Entitlements", mock.Anything, mock.Anything)
}
