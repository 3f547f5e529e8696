package service

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"go.uber.org/zap"

	"github.com/echodesk/echodesk-api/internal/api/dto"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

// SecurityService owns the per-tenant IP allow-list and client IP
// extraction.
type SecurityService struct {
	repo   repository.Repository
	logger *logger.Logger
}

func NewSecurityService(repo repository.Repository, log *logger.Logger) *SecurityService {
	return &SecurityService{
		repo:   repo,
		logger: log,
	}
}

// ClientIP extracts the originating client address. The first entry of
// X-Forwarded-For wins when present, since the service always runs behind a
// trusted load balancer; otherwise the socket's remote address is used.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	host := r.RemoteAddr
	if addr, err := netip.ParseAddrPort(host); err == nil {
		return addr.Addr().String()
	}
	return host
}

// IsIPWhitelisted reports whether the client address passes the tenant's
// allow-list. Superusers bypass the check when the tenant opted in.
// Unparseable whitelist entries are skipped, not treated as matches.
func (s *SecurityService) IsIPWhitelisted(ctx context.Context, tenant *domain.Tenant, clientIP string, isSuperuser bool) (bool, error) {
	if isSuperuser && tenant.SuperuserBypassWhitelist {
		return true, nil
	}

	addr, err := netip.ParseAddr(clientIP)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidIPAddress, clientIP)
	}

	entries, err := s.repo.Whitelist().ListActive(ctx, tenant.ID)
	if err != nil {
		return false, err
	}

	for i := range entries {
		if s.entryMatches(&entries[i], addr) {
			return true, nil
		}
	}
	return false, nil
}

func (s *SecurityService) entryMatches(entry *domain.TenantIPWhitelist, addr netip.Addr) bool {
	entryAddr, err := netip.ParseAddr(entry.IPAddress)
	if err != nil {
		s.logger.Warnf("skipping malformed whitelist entry %s: %v", entry.ID, err)
		return false
	}

	if entry.CIDRPrefix == nil {
		return entryAddr == addr
	}

	prefix, err := entryAddr.Prefix(*entry.CIDRPrefix)
	if err != nil {
		s.logger.Warnf("skipping whitelist entry %s with bad prefix /%d: %v", entry.ID, *entry.CIDRPrefix, err)
		return false
	}
	return prefix.Contains(addr)
}

func (s *SecurityService) ListWhitelist(ctx context.Context, tenantID string) ([]dto.WhitelistEntryResponse, error) {
	entries, err := s.repo.Whitelist().List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WhitelistEntryResponse, len(entries))
	for i := range entries {
		responses[i] = *dto.FromWhitelistEntry(&entries[i])
	}
	return responses, nil
}

func (s *SecurityService) AddWhitelistEntry(ctx context.Context, tenantID string, req dto.AddWhitelistEntryRequest) (*dto.WhitelistEntryResponse, error) {
	addr, err := netip.ParseAddr(req.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIPAddress, req.IPAddress)
	}
	if req.CIDRPrefix != nil {
		if _, err := addr.Prefix(*req.CIDRPrefix); err != nil {
			return nil, fmt.Errorf("%w: /%d", ErrInvalidIPAddress, *req.CIDRPrefix)
		}
	}

	entry := &domain.TenantIPWhitelist{
		TenantID:   tenantID,
		IPAddress:  addr.String(),
		CIDRPrefix: req.CIDRPrefix,
		Label:      req.Label,
		IsActive:   true,
	}

	created, err := s.repo.Whitelist().Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("whitelist entry added",
		zap.String("tenant_id", tenantID),
		zap.String("ip", created.IPAddress))

	return dto.FromWhitelistEntry(created), nil
}

func (s *SecurityService) RemoveWhitelistEntry(ctx context.Context, tenantID, entryID string) error {
	return s.repo.Whitelist().Delete(ctx, tenantID, entryID)
}
