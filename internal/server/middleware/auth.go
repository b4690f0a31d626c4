package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principalID"

// TokenParser verifies a bearer token and returns the principal id it
// carries.
type TokenParser interface {
	ParseToken(tokenString string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// principal id in the gin context for handlers to pick up.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		principalID, err := parser.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, principalID)
		c.Next()
	}
}

// PrincipalID returns the authenticated principal id stored by RequireAuth.
func PrincipalID(c *gin.Context) string {
	return c.GetString(principalKey)
}
