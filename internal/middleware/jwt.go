package middleware

import (
	"context"                      // Context for user lookups
	"leave_system/internal/domain" // Importing domain models
	"leave_system/internal/utils"  // JWT claims
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// identityKey is the gin context key holding the authenticated caller
const identityKey = "identity"

// TokenVerifier checks a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// UserLookup loads a user by primary key, returning nil when absent
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Authenticate validates the bearer token and attaches the caller's identity.
// The role is taken from the user row, not from the token.
func Authenticate(tokens TokenVerifier, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		claims, err := tokens.Verify(tokenStr) // Verify signature and expiry
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}
		user, err := users.FindByID(c.Request.Context(), claims.UserID) // Confirm the user still exists
		if err != nil {
			Logger(c).WithError(err).WithField("user_id", claims.UserID).Error("Failed to load user for token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}
		identity := user.Identity()
		c.Set(identityKey, &identity) // Store identity in context
		c.Next()                      // Proceed to the next handler
	}
}

// CurrentIdentity returns the identity set by Authenticate, or nil
func CurrentIdentity(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}
