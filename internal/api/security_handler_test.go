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

type SecurityHandlerTestSuite struct {
	suite.Suite
	mockService *MockSecurityService
	handler     *SecurityHandler
}

type MockSecurityService struct {
	mock.Mock
}

func (m *MockSecurityService) ListWhitelist(ctx context.Context, tenantID string) ([]dto.WhitelistEntryResponse, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]dto.WhitelistEntryResponse), args.Error(1)
}

func (m *MockSecurityService) AddWhitelistEntry(ctx context.Context, tenantID string, req dto.AddWhitelistEntryRequest) (*dto.WhitelistEntryResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WhitelistEntryResponse), args.Error(1)
}

func (m *MockSecurityService) RemoveWhitelistEntry(ctx context.Context, tenantID, entryID string) error {
	args := m.Called(ctx, tenantID, entryID)
	return args.Error(0)
}

func (s *SecurityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockSecurityService)
	s.handler = NewSecurityHandler(s.mockService)
}

func TestSecurityHandler(t *testing.T) {
	suite.Run(t, new(SecurityHandlerTestSuite))
}

func (s *SecurityHandlerTestSuite) tenantContext(w *httptest.ResponseRecorder) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Set(string(utils.TenantKey), &domain.Tenant{ID: "tenant1", SchemaName: "acme", IsActive: true})
	return c
}

func (s *SecurityHandlerTestSuite) TestCurrentIP() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/security/current-ip", nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	// Act
	s.handler.CurrentIP(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.CurrentIPResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("203.0.113.7", response.IPAddress)
}

func (s *SecurityHandlerTestSuite) TestListWhitelist_Success() {
	// Arrange
	expected := []dto.WhitelistEntryResponse{
		{ID: "w1", IPAddress: "203.0.113.7", IsActive: true},
	}
	s.mockService.On("ListWhitelist", mock.Anything, "tenant1").Return(expected, nil)

	w := httptest.NewRecorder()
	c := s.tenantContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/security/ip-whitelist", nil)

	// Act
	s.handler.ListWhitelist(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response []dto.WhitelistEntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Len(response, 1)
	s.Equal("203.0.113.7", response[0].IPAddress)
	s.mockService.AssertExpectations(s.T())
}

func (s *SecurityHandlerTestSuite) TestListWhitelist_PublicSchema() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/security/ip-whitelist", nil)
	c.Set(string(utils.TenantKey), domain.PublicTenant("echodesk.ge"))

	// Act
	s.handler.ListWhitelist(c)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
	s.mockService.AssertNotCalled(s.T(), "ListWhitelist", mock.Anything, mock.Anything)
}

func (s *SecurityHandlerTestSuite) TestAddWhitelistEntry_Success() {
	// Arrange
	prefix := 24
	req := dto.AddWhitelistEntryRequest{
		IPAddress:  "203.0.113.0",
		CIDRPrefix: &prefix,
		Label:      "office VPN",
	}
	created := &dto.WhitelistEntryResponse{
		ID:         "w1",
		IPAddress:  "203.0.113.0",
		CIDRPrefix: &prefix,
		Label:      "office VPN",
		IsActive:   true,
	}

	s.mockService.On("AddWhitelistEntry", mock.Anything, "tenant1", req).Return(created, nil)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c := s.tenantContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/security/ip-whitelist", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.AddWhitelistEntry(c)

	// Assert
	s.Equal(http.StatusCreated, w.Code)
	var response dto.WhitelistEntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("w1", response.ID)
	s.mockService.AssertExpectations(s.T())
}

func (s *SecurityHandlerTestSuite) TestAddWhitelistEntry_InvalidAddress() {
	// Arrange
	req := dto.AddWhitelistEntryRequest{IPAddress: "not-an-ip"}

	s.mockService.On("AddWhitelistEntry", mock.Anything, "tenant1", req).Return(nil, service.ErrInvalidIPAddress)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c := s.tenantContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/security/ip-whitelist", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.AddWhitelistEntry(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SecurityHandlerTestSuite) TestRemoveWhitelistEntry_Success() {
	// Arrange
	s.mockService.On("RemoveWhitelistEntry", mock.Anything, "tenant1", "w1").Return(nil)

	w := httptest.NewRecorder()
	c := s.tenantContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/security/ip-whitelist/w1", nil)
	c.Params = gin.Params{{Key: "id", Value: "w1"}}

	// Act
	s.handler.RemoveWhitelistEntry(c)
	c.Writer.WriteHeaderNow()

	// Assert
	s.Equal(http.StatusNoContent, w.Code)
	s.mockService.AssertExpectations(s.T())
}
