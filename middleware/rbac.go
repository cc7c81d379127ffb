package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles admits the request only when the caller holds one of
// the allowed roles. The refusal body stays generic so it does not
// leak which role the route wanted.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
	}
}
