package api

import (
	"github.com/gin-gonic/gin"

	"github.com/echodesk/echodesk-api/internal/domain"
	"github.com/echodesk/echodesk-api/internal/middleware"
	"github.com/echodesk/echodesk-api/internal/service"
	"github.com/echodesk/echodesk-api/internal/tenancy"
)

type Server struct {
	tenant       *TenantHandler
	subscription *SubscriptionHandler
	catalog      *CatalogHandler
	security     *SecurityHandler
	tenantMW     *middleware.TenantMiddleware
	whitelist    *middleware.IPWhitelistMiddleware
	entitlement  *middleware.EntitlementMiddleware
	auth         *middleware.AuthMiddleware
	rateLimit    *middleware.RateLimitMiddleware
	validation   *middleware.ValidationMiddleware
}

func NewServer(
	tenantService *service.TenantService,
	subscriptionService *service.SubscriptionService,
	entitlementService *service.EntitlementService,
	catalogService *service.CatalogService,
	securityService *service.SecurityService,
	tenantMW *middleware.TenantMiddleware,
	whitelist *middleware.IPWhitelistMiddleware,
	entitlement *middleware.EntitlementMiddleware,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
) *Server {
	return &Server{
		tenant:       NewTenantHandler(tenantService),
		subscription: NewSubscriptionHandler(subscriptionService, entitlementService),
		catalog:      NewCatalogHandler(catalogService),
		security:     NewSecurityHandler(securityService),
		tenantMW:     tenantMW,
		whitelist:    whitelist,
		entitlement:  entitlement,
		auth:         auth,
		rateLimit:    rateLimit,
		validation:   validation,
	}
}

// SetupRoutes wires both URL surfaces onto one router. Every request passes
// tenant resolution first; RequireRouteTable then hides each surface from
// the other schema, so a tenant endpoint on the public domain 404s exactly
// like an unknown route.
func (s *Server) SetupRoutes(router *gin.Engine) {
	// Registered before the tenant middleware on purpose: load balancers
	// probe by IP, which resolves to no tenant.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.Use(s.tenantMW.Handler())
	router.Use(s.whitelist.Handler())

	api := router.Group("/api")
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.ValidateRequestSize(10 * 1024 * 1024)) // 10MB max
	api.Use(s.validation.ValidateContentType("application/json"))
	api.Use(s.rateLimit.GlobalRateLimit(10000)) // 10k requests per minute per IP

	public := api.Group("", middleware.RequireRouteTable(tenancy.PublicRoutes))
	{
		public.POST("/tenants/register", s.tenant.RegisterTenant)
		public.GET("/packages", s.catalog.ListPackages)
		public.GET("/features", s.catalog.ListFeatures)

		tenants := public.Group("/tenants", s.auth.JWTAuth(), s.auth.RequireRole("admin"))
		{
			tenants.GET("", s.tenant.ListTenants)
			tenants.GET("/:id", s.tenant.GetTenant)
			tenants.PATCH("/:id", s.tenant.UpdateTenant)
			tenants.DELETE("/:id", s.tenant.DeactivateTenant)
		}
	}

	tenantAPI := api.Group("", middleware.RequireRouteTable(tenancy.TenantRoutes), s.rateLimit.TenantRateLimit())
	{
		tenantAPI.GET("/tenant/info", s.tenant.TenantInfo)
		tenantAPI.GET("/security/current-ip", s.security.CurrentIP)

		subscription := tenantAPI.Group("/subscription", s.auth.JWTAuth(), s.auth.RequireRole("admin"))
		{
			subscription.GET("", s.subscription.GetSubscription)
			subscription.PUT("", s.subscription.UpdateSubscription)
			subscription.GET("/limits/:kind", s.subscription.GetLimit)
		}

		tenantAPI.GET("/entitlements", s.auth.JWTAuth(), s.subscription.GetEntitlements)

		usage := tenantAPI.Group("/usage", s.auth.JWTAuth())
		{
			usage.POST("/whatsapp",
				s.entitlement.RequireFeature(domain.FeatureWhatsAppIntegration),
				s.entitlement.RequireWithinLimit(domain.LimitWhatsApp),
				s.subscription.RecordWhatsAppUsage)
			usage.POST("/users",
				s.entitlement.RequireWithinLimit(domain.LimitUsers),
				s.subscription.RecordUserAdded)
			usage.DELETE("/users", s.subscription.RecordUserRemoved)
		}

		whitelist := tenantAPI.Group("/security/ip-whitelist", s.auth.JWTAuth(), s.auth.RequireRole("admin"))
		{
			whitelist.GET("", s.security.ListWhitelist)
			whitelist.POST("", s.security.AddWhitelistEntry)
			whitelist.DELETE("/:id", s.security.RemoveWhitelistEntry)
		}
	}
}
