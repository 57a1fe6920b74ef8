package middleware

import (
	"context"  // Request context
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"vocab_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID = "userID" // Authenticated user ID
	ContextRole   = "role"   // Authenticated user role
)

// Authenticator resolves a bearer token to the current user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// JWTAuthMiddleware validates JWT tokens and loads the current user.
// The role placed in the context comes from the stored user, not the token.
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if domain.IsKind(err, domain.KindAuth) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
				return
			}
			logrus.WithError(err).Error("Failed to authenticate request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.Set(ContextUserID, user.ID) // Store userID in context
		c.Set(ContextRole, user.Role) // Store role in context
		c.Next()                      // Proceed to the next handler
	}
}
