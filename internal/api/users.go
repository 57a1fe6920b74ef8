package api

import (
	"net/http" // HTTP status codes

	"vocab_system/internal/middleware" // Context keys
	"vocab_system/internal/service"    // Business logic
	"vocab_system/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// RegisterRequest is the self-registration body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name
	Email    string `json:"email" binding:"required,email"` // Login email
	Password string `json:"password" binding:"required"`    // Plain password, hashed before storage
}

// LoginRequest is the login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plain password
}

// UpdateUserRequest is the admin user update body
type UpdateUserRequest struct {
	Name *string `json:"name"` // New display name
	Role *string `json:"role"` // New role
}

// RegisterHandler creates a regular user and returns a token
func RegisterHandler(users *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, token, err := users.Register(c.Request.Context(), service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err, "register")
			return
		}
		invalidateUsers(c, rdb)
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "token": token, "user": user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, token, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "login")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": user})
	}
}

// ProfileHandler returns the authenticated user
func ProfileHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.Profile(c.Request.Context(), c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err, "profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler lets an admin rename a user or change their role
func UpdateUserHandler(users *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := users.UpdateUser(c.Request.Context(), c.Param("id"), service.UserPatch{Name: req.Name, Role: req.Role})
		if err != nil {
			respondError(c, err, "update user")
			return
		}
		invalidateUsers(c, rdb)
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"role":     user.Role,
			"admin_id": c.GetString(middleware.ContextUserID),
		}).Info("User updated")
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes a user and their saved words
func DeleteUserHandler(users *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := users.DeleteUser(c.Request.Context(), id); err != nil {
			respondError(c, err, "delete user")
			return
		}
		invalidateUsers(c, rdb)
		invalidateStats(c, rdb) // Saved word totals change too
		logrus.WithFields(logrus.Fields{
			"user_id":  id,
			"admin_id": c.GetString(middleware.ContextUserID),
		}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// invalidateUsers drops cached user pages and the registration stats
func invalidateUsers(c *gin.Context, rdb *redis.Client) {
	if err := utils.DeleteCacheByPrefix(c.Request.Context(), rdb, utils.CachePrefixAdminUsr); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate user cache")
	}
	invalidateStats(c, rdb)
}

// invalidateStats drops the cached dashboard statistics
func invalidateStats(c *gin.Context, rdb *redis.Client) {
	if err := utils.DeleteCache(c.Request.Context(), rdb, utils.CacheKeyAdminStats); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate stats cache")
	}
}
