package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	errMissingHeader = errors.New("missing Authorization header")
	errInvalidHeader = errors.New("invalid Authorization header")
	errInvalidToken  = errors.New("invalid token")
)

// CurrentUserID returns the authenticated caller's id, or nil on an
// unauthenticated request.
func CurrentUserID(c *gin.Context) *uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// CurrentRole returns the authenticated caller's role, or "" on an
// unauthenticated request.
func CurrentRole(c *gin.Context) string {
	return c.GetString("role")
}
