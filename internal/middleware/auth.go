package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/echodesk/echodesk-api/internal/config"
	"github.com/echodesk/echodesk-api/internal/utils"
)

type AuthMiddleware struct {
	config *config.Config
}

func NewAuthMiddleware(config *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		config: config,
	}
}

func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseAuthHeader(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing authorization token"})
			c.Abort()
			return
		}

		c.Set(string(utils.ClaimsKey), claims)
		c.Next()
	}
}

// RequireRole middleware checks if the user has the required role
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get(string(utils.ClaimsKey))
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}

		claimsMap, ok := claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Invalid claims type"})
			return
		}

		// Platform superusers pass every role check.
		if utils.IsSuperuserClaims(claimsMap) {
			c.Next()
			return
		}

		if !hasRole(claimsMap, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// IsSuperuserToken verifies the bearer token and reports whether it carries
// the superuser claim. Used by the IP whitelist gate, which runs before
// JWTAuth: a superuser must be recognizable even on endpoints that do not
// require authentication. Invalid or absent tokens simply answer false.
func (m *AuthMiddleware) IsSuperuserToken(authHeader string) bool {
	claims, ok := m.parseAuthHeader(authHeader)
	if !ok {
		return false
	}
	return utils.IsSuperuserClaims(claims)
}

func (m *AuthMiddleware) parseAuthHeader(authHeader string) (jwt.MapClaims, bool) {
	if authHeader == "" {
		return nil, false
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(bearerToken[1], &claims, func(token *jwt.Token) (any, error) {
		return []byte(m.config.JWTSecretKey), nil
	})
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (m *AuthMiddleware) GenerateToken(userID string, roles []string, isSuperuser bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      userID,
		"roles":        roles,
		"is_superuser": isSuperuser,
		"exp":          time.Now().Add(time.Duration(m.config.JWTExpirationHours) * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.JWTSecretKey))
}

// hasRole checks if the user has the required role
func hasRole(claims jwt.MapClaims, requiredRole string) bool {
	rolesInterface, exists := claims["roles"]
	if !exists {
		return false
	}

	roles, ok := rolesInterface.([]any)
	if !ok {
		return false
	}

	for _, role := range roles {
		if roleStr, ok := role.(string); ok && roleStr == requiredRole {
			return true
		}
	}
	return false
}
