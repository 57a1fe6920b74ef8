package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache lifetime

	"vocab_system/internal/domain"  // Importing domain models
	"vocab_system/internal/service" // Business logic
	"vocab_system/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// StatsHandler returns catalog totals and this month's registrations per day
func StatsHandler(stats *service.StatsService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached domain.AdminStats
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, utils.CacheKeyAdminStats, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		result, err := stats.AdminStats(ctx)
		if err != nil {
			respondError(c, err, "admin stats")
			return
		}
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, utils.CacheKeyAdminStats, result, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to cache stats")
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListUsersHandler returns one page of users, newest first
func ListUsersHandler(users *service.UserService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		// Create a cache key based on the effective pagination
		cacheKey := utils.CachePrefixAdminUsr + "page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var cached service.UserPage
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		result, err := users.ListUsers(ctx, page, pageSize)
		if err != nil {
			respondError(c, err, "list users")
			return
		}
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, cacheKey, result, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to cache users")
		}
		c.JSON(http.StatusOK, gin.H{
			"users":       result.Users,      // List of users
			"page":        result.Page,       // Current page
			"page_size":   result.PageSize,   // Page size
			"total":       result.Total,      // Total number of users
			"total_pages": result.TotalPages, // Total pages
			"cached":      false,             // Indicate response is not from cache
		})
	}
}
