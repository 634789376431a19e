package middleware

import (
	"errors"                        // Error matching
	"leave_system/internal/domain"  // Importing domain models
	"leave_system/internal/service" // Role checks
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoles lets the request through only when the caller holds one of roles.
// Must run after Authenticate.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.Authorize(CurrentIdentity(c), roles...)
		switch {
		case err == nil:
			c.Next() // Role allowed, proceed to the next handler
		case errors.Is(err, domain.ErrUnauthorized):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
		}
	}
}
