package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gestionale/gestionale/internal/core/identity"
)

const ContextIdentity = "identity"

type AuthMiddleware struct {
	identityService *identity.Service
}

func NewAuthMiddleware(identityService *identity.Service) *AuthMiddleware {
	return &AuthMiddleware{identityService: identityService}
}

// Authenticate validates the bearer token and stores the caller identity in
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := m.identityService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextIdentity, claims.Identity())
		c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetIdentity(c)
		if !ok || !caller.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin required"})
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the caller identity from the request context.
func GetIdentity(c *gin.Context) (identity.Identity, bool) {
	val, exists := c.Get(ContextIdentity)
	if !exists {
		return identity.Identity{}, false
	}
	id, ok := val.(identity.Identity)
	return id, ok
}
