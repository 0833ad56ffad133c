package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeFormInputMiddleware strips markup from all posted form values on
// public routes before the handlers see them.
func SanitizeFormInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}

		for key, values := range c.Request.PostForm {
			for i, v := range values {
				values[i] = policy.Sanitize(v)
			}
			c.Request.PostForm[key] = values
		}

		c.Next()
	}
}
