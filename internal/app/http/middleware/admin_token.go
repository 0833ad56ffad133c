package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"campaign-builder/config"

	"github.com/gin-gonic/gin"
)

// RequireAdminToken guards the admin surface with the static deploy-time
// token from ADMIN_TOKEN, sent as a bearer credential.
func RequireAdminToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := config.ADMIN_TOKEN
		if token == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin token not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		presented := strings.TrimPrefix(authHeader, "Bearer ")
		if presented == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
