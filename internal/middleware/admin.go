package middleware

import (
	"net/http" // HTTP status codes

	"vocab_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware allows only admins past; it must run after JWTAuthMiddleware
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if userID exists in context
		if _, exists := c.Get(ContextUserID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		// Check if user role is admin
		if c.GetString(ContextRole) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
