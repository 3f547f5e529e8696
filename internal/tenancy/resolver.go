package tenancy

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/repository"
	"github.com/echodesk/echodesk-api/pkg/logger"
)

// ErrTenantNotFound means the hostname does not map to any registered tenant.
// Surfaced as 404; logged at debug only since unknown subdomains are mostly
// bot probing.
var ErrTenantNotFound = errors.New("tenant not found for host")

const (
	hostCacheKeyPrefix = "tenant_host:"
	hostCacheTTL       = 5 * time.Minute
)

// Resolver maps a request's Host header to a tenant. Lookups are cached in
// Redis; cache and Redis failures fall through to the database.
type Resolver struct {
	tenants repository.TenantRepository
	redis   *redis.Client
	config  *config.Config
	logger  *logger.Logger
}

func NewResolver(tenants repository.TenantRepository, redisClient *redis.Client, cfg *config.Config, log *logger.Logger) *Resolver {
	return &Resolver{
		tenants: tenants,
		redis:   redisClient,
		config:  cfg,
		logger:  log,
	}
}

// NormalizeHost lower-cases a Host header value and strips any port.
func NormalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}

// Resolve maps a hostname to a tenant:
//  1. the main or API domain itself resolves to the synthetic public tenant;
//  2. a subdomain of the API domain resolves by schema name;
//  3. anything else resolves as a custom domain.
//
// Unknown hosts return ErrTenantNotFound. Infrastructure failures during
// lookup resolve to the public tenant instead of failing the request.
func (r *Resolver) Resolve(ctx context.Context, host string) (*domain.Tenant, error) {
	hostname := NormalizeHost(host)

	if hostname == r.config.MainDomain || hostname == r.config.APIDomain {
		return domain.PublicTenant(hostname), nil
	}

	if tenant := r.fromCache(ctx, hostname); tenant != nil {
		return tenant, nil
	}

	var (
		tenant *domain.Tenant
		err    error
	)
	if suffix := "." + r.config.APIDomain; strings.HasSuffix(hostname, suffix) {
		subdomain := strings.TrimSuffix(hostname, suffix)
		tenant, err = r.tenants.GetBySchemaName(ctx, subdomain)
	} else {
		tenant, err = r.tenants.GetByDomainURL(ctx, hostname)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugf("no tenant registered for host %s", hostname)
			return nil, ErrTenantNotFound
		}
		r.logger.Error("tenant resolution failed, falling back to public schema", err,
			zap.String("host", hostname))
		return domain.PublicTenant(hostname), nil
	}

	r.toCache(ctx, hostname, tenant)
	return tenant, nil
}

// Invalidate drops cached resolutions for a tenant's hostnames. Must be
// called whenever a tenant's schema name, domain or active flag changes.
func (r *Resolver) Invalidate(ctx context.Context, tenant *domain.Tenant) {
	if r.redis == nil {
		return
	}
	keys := []string{
		hostCacheKeyPrefix + tenant.SchemaName + "." + r.config.APIDomain,
		hostCacheKeyPrefix + tenant.DomainURL,
	}
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("failed to invalidate tenant host cache", err,
			zap.String("schema", tenant.SchemaName))
	}
}

func (r *Resolver) fromCache(ctx context.Context, hostname string) *domain.Tenant {
	if r.redis == nil {
		return nil
	}
	data, err := r.redis.Get(ctx, hostCacheKeyPrefix+hostname).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Error("redis error reading tenant host cache", err)
		}
		return nil
	}
	var tenant domain.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		r.logger.Error("corrupt tenant host cache entry", err, zap.String("host", hostname))
		return nil
	}
	return &tenant
}

func (r *Resolver) toCache(ctx context.Context, hostname string, tenant *domain.Tenant) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, hostCacheKeyPrefix+hostname, data, hostCacheTTL).Err(); err != nil {
		r.logger.Error("redis error writing tenant host cache", err)
	}
}
