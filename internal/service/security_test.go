package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/mocks"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

type SecurityServiceTestSuite struct {
	suite.Suite
	mockRepo      *mocks.Repository
	mockWhitelist *mocks.WhitelistRepository
	service       *SecurityService
}

func (s *SecurityServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockWhitelist = new(mocks.WhitelistRepository)

	s.mockRepo.On("Whitelist").Return(s.mockWhitelist).Maybe()

	s.service = NewSecurityService(s.mockRepo, logger.NewLogger("test"))
}

func TestSecurityService(t *testing.T) {
	suite.Run(t, new(SecurityServiceTestSuite))
}

func whitelistedTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:                 "tenant1",
		SchemaName:         "acme",
		IsActive:           true,
		IPWhitelistEnabled: true,
	}
}

func (s *SecurityServiceTestSuite) TestIsIPWhitelisted_ExactMatch() {
	// Arrange
	ctx := context.Background()
	s.mockWhitelist.On("ListActive", ctx, "tenant1").Return([]domain.TenantIPWhitelist{
		{ID: "w1", TenantID: "tenant1", IPAddress: "203.0.113.7", IsActive: true},
	}, nil)

	// Act
	allowed, err := s.service.IsIPWhitelisted(ctx, whitelistedTenant(), "203.0.113.7", false)
	denied, err2 := s.service.IsIPWhitelisted(ctx, whitelistedTenant(), "203.0.113.8", false)

	// Assert
	s.NoError(err)
	s.True(allowed)
	s.NoError(err2)
	s.False(denied)
}

func (s *SecurityServiceTestSuite) TestIsIPWhitelisted_CIDRMatch() {
	// Arrange
	ctx := context.Background()
	prefix := 24
	s.mockWhitelist.On("ListActive", ctx, "tenant1").Return([]domain.TenantIPWhitelist{
		{ID: "w1", TenantID: "tenant1", IPAddress: "203.0.113.0", CIDRPrefix: &prefix, IsActive: true},
	}, nil)

	// Act
	inside, err1 := s.service.IsIPWhitelisted(ctx, whitelistedTenant(), "203.0.113.250", false)
	outside, err2 := s.service.IsIPWhitelisted(ctx, whitelistedTenant(), "203.0.114.1", false)

	// Assert
	s.NoError(err1)
	s.True(inside)
	s.NoError(err2)
	s.False(outside)
}

func (s *SecurityServiceTestSuite) TestIsIPWhitelisted_MalformedEntrySkipped() {
	// Arrange
	ctx := context.Background()
	s.mockWhitelist.On("ListActive", ctx, "tenant1").Return([]domain.TenantIPWhitelist{
		{ID: "w1", TenantID: "tenant1", IPAddress: "not-an-ip", IsActive: true},
		{ID: "w2", TenantID: "tenant1", IPAddress: "203.0.113.7", IsActive: true},
	}, nil)

	// Act
	allowed, err := s.service.IsIPWhitelisted(ctx, whitelistedTenant(), "203.0.113.7", false)

	// Assert
	s.NoError(err)
	s.True(allowed)
}

func (s *SecurityServiceTestSuite) TestIsIPWhitelisted_SuperuserBypass() {
	// Arrange
	tenant := whitelistedTenant()
	tenant.SuperuserBypassWhitelist = true

	// Act
	allowed, err := s.service.IsIPWhitelisted(context.Background(), tenant, "203.0.113.99", true)

	// Assert
	s.NoError(err)
	s.True(allowed)
	s.mockWhitelist.AssertNotCalled(s.T(), "ListActive", mock.Anything, mock.Anything)
}

func (s *SecurityServiceTestSuite) TestIsIPWhitelisted_SuperuserWithoutOptIn() {
	// Arrange: the bypass only applies when the tenant opted in.
	ctx := context.Background()
	s.mockWhitelist.On("ListActive", ctx, "tenant1").Return([]domain.TenantIPWhitelist{}, nil)

	// Act
	allowed, err := s.service.IsIPWhitelisted(ctx, whitelistedTenant(), "203.0.113.99", true)

	// Assert
	s.NoError(err)
	s.False(allowed)
	s.mockWhitelist.AssertExpectations(s.T())
}

func (s *SecurityServiceTestSuite) TestIsIPWhitelisted_UnparseableClientIP() {
	// Act
	allowed, err := s.service.IsIPWhitelisted(context.Background(), whitelistedTenant(), "garbage", false)

	// Assert
	s.ErrorIs(err, ErrInvalidIPAddress)
	s.False(allowed)
}

func (s *SecurityServiceTestSuite) TestAddWhitelistEntry_ValidatesAddress() {
	// Act
	resp, err := s.service.AddWhitelistEntry(context.Background(), "tenant1", dto.AddWhitelistEntryRequest{
		IPAddress: "not-an-ip",
	})

	// Assert
	s.ErrorIs(err, ErrInvalidIPAddress)
	s.Nil(resp)
	s.mockWhitelist.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *SecurityServiceTestSuite) TestAddWhitelistEntry_ValidatesPrefix() {
	// Arrange
	badPrefix := 64

	// Act
	resp, err := s.service.AddWhitelistEntry(context.Background(), "tenant1", dto.AddWhitelistEntryRequest{
		IPAddress:  "203.0.113.0",
		CIDRPrefix: &badPrefix,
	})

	// Assert
	s.ErrorIs(err, ErrInvalidIPAddress)
	s.Nil(resp)
}

func (s *SecurityServiceTestSuite) TestAddWhitelistEntry_Success() {
	// Arrange
	ctx := context.Background()
	prefix := 24
	created := &domain.TenantIPWhitelist{
		ID:         "w1",
		TenantID:   "tenant1",
		IPAddress:  "203.0.113.0",
		CIDRPrefix: &prefix,
		Label:      "office VPN",
		IsActive:   true,
	}

	s.mockWhitelist.On("Create", ctx, mock.MatchedBy(func(entry *domain.TenantIPWhitelist) bool {
		return entry.TenantID == "tenant1" && entry.IPAddress == "203.0.113.0" && entry.IsActive
	})).Return(created, nil)

	// Act
	resp, err := s.service.AddWhitelistEntry(ctx, "tenant1", dto.AddWhitelistEntryRequest{
		IPAddress:  "203.0.113.0",
		CIDRPrefix: &prefix,
		Label:      "office VPN",
	})

	// Assert
	s.NoError(err)
	s.Equal("w1", resp.ID)
	s.Equal("office VPN", resp.Label)
	s.mockWhitelist.AssertExpectations(s.T())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"forwarded header wins", "10.0.0.1:34567", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"single forwarded hop", "10.0.0.1:34567", "203.0.113.7", "203.0.113.7"},
		{"falls back to remote addr", "203.0.113.7:34567", "", "203.0.113.7"},
		{"ipv6 remote addr", "[2001:db8::1]:443", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}

			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
