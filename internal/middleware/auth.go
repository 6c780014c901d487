package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/token"
)

const identityKey = "identity"

// TokenValidator resolves a raw access token to an identity.
type TokenValidator interface {
	ValidateAccess(raw string) (*token.Identity, error)
}

// Auth is the authentication gate. The exemption check runs first, before
// the Authorization header is even looked at: an exempt request must never
// be pushed through a validator that would reject it. Matching is by
// substring against the configured path fragments.
func Auth(validator TokenValidator, exemptPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.Trim(c.Request.URL.Path, "/")
		for _, exempt := range exemptPaths {
			if strings.Contains(path, exempt) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		identity, err := validator.ValidateAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// GetIdentity returns the identity set by Auth for the current request.
func GetIdentity(c *gin.Context) (token.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return token.Identity{}, false
	}
	identity, ok := v.(token.Identity)
	return identity, ok
}

// SetIdentity exists for handler tests that bypass the real Auth middleware.
func SetIdentity(c *gin.Context, identity token.Identity) {
	c.Set(identityKey, identity)
}
