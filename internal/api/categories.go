package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache lifetime

	"vocab_system/internal/domain"     // Importing domain models
	"vocab_system/internal/middleware" // Context keys
	"vocab_system/internal/service"    // Business logic
	"vocab_system/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CategoryRequest is the category create body
type CategoryRequest struct {
	Name            string `json:"name" binding:"required"`            // Unique category name
	BackgroundImage string `json:"backgroundImage" binding:"required"` // Background image URI
}

// CategoryPatchRequest is the category update body; omitted fields are unchanged
type CategoryPatchRequest struct {
	Name            *string `json:"name"`            // New name
	BackgroundImage *string `json:"backgroundImage"` // New background image URI
}

// ListCategoriesHandler returns all categories, newest first
func ListCategoriesHandler(catalog *service.CatalogService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Category
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, utils.CacheKeyCategories, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		categories, err := catalog.ListCategories(ctx)
		if err != nil {
			respondError(c, err, "list categories")
			return
		}
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, utils.CacheKeyCategories, categories, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to cache categories")
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategoryHandler creates a category
func CreateCategoryHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		category, err := catalog.CreateCategory(c.Request.Context(), domain.CategoryInput{
			Name:            req.Name,
			BackgroundImage: req.BackgroundImage,
		})
		if err != nil {
			respondError(c, err, "create category")
			return
		}
		invalidateCatalog(c, rdb)
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,
			"admin_id":    c.GetString(middleware.ContextUserID),
		}).Info("Category created")
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategoryHandler renames a category or changes its background
func UpdateCategoryHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		category, err := catalog.UpdateCategory(c.Request.Context(), c.Param("id"), domain.CategoryPatch{
			Name:            req.Name,
			BackgroundImage: req.BackgroundImage,
		})
		if err != nil {
			respondError(c, err, "update category")
			return
		}
		invalidateCatalog(c, rdb)
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,
			"admin_id":    c.GetString(middleware.ContextUserID),
		}).Info("Category updated")
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes a category no vocabulary references
func DeleteCategoryHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := catalog.DeleteCategory(c.Request.Context(), id); err != nil {
			respondError(c, err, "delete category")
			return
		}
		invalidateCatalog(c, rdb)
		logrus.WithFields(logrus.Fields{
			"category_id": id,
			"admin_id":    c.GetString(middleware.ContextUserID),
		}).Info("Category deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

// invalidateCatalog drops every cached catalog view; vocabulary lists embed categories
func invalidateCatalog(c *gin.Context, rdb *redis.Client) {
	ctx := c.Request.Context()
	if err := utils.DeleteCache(ctx, rdb, utils.CacheKeyCategories, utils.CacheKeyAdminStats); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate catalog cache")
	}
	if err := utils.DeleteCacheByPrefix(ctx, rdb, utils.CachePrefixVocab); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate vocabulary cache")
	}
}
