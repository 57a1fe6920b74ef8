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

// VocabRequest is the vocabulary create body
type VocabRequest struct {
	Word       string       `json:"word" binding:"required"`    // Headword
	Meaning    string       `json:"meaning" binding:"required"` // Translation or definition
	AudioURL   string       `json:"audioUrl"`                   // Optional pronunciation audio
	ImageURL   string       `json:"imageUrl"`                   // Optional illustration
	Level      domain.Level `json:"level"`                      // Optional CEFR level
	CategoryID string       `json:"categoryId"`                 // Optional category
}

// VocabPatchRequest is the vocabulary update body; an empty categoryId clears the category
type VocabPatchRequest struct {
	Word       *string       `json:"word"`       // New headword
	Meaning    *string       `json:"meaning"`    // New meaning
	AudioURL   *string       `json:"audioUrl"`   // New audio URI
	ImageURL   *string       `json:"imageUrl"`   // New image URI
	Level      *domain.Level `json:"level"`      // New level
	CategoryID *string       `json:"categoryId"` // New category
}

// ListVocabHandler returns vocabulary with categories, optionally filtered by ?category=
func ListVocabHandler(catalog *service.CatalogService, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		filter := domain.VocabFilter{CategoryID: c.Query("category")}
		cacheKey := utils.CachePrefixVocab + "category=" + filter.CategoryID // One entry per filter
		var cached []domain.Vocabulary
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		vocabs, err := catalog.ListVocab(ctx, filter)
		if err != nil {
			respondError(c, err, "list vocabulary")
			return
		}
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, cacheKey, vocabs, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to cache vocabulary")
		}
		c.JSON(http.StatusOK, vocabs)
	}
}

// GetVocabHandler returns one vocabulary entry
func GetVocabHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vocab, err := catalog.GetVocab(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "get vocabulary")
			return
		}
		c.JSON(http.StatusOK, vocab)
	}
}

// CreateVocabHandler creates a vocabulary entry
func CreateVocabHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VocabRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		vocab, err := catalog.CreateVocab(c.Request.Context(), domain.VocabInput{
			Word:       req.Word,
			Meaning:    req.Meaning,
			AudioURL:   req.AudioURL,
			ImageURL:   req.ImageURL,
			Level:      req.Level,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			respondError(c, err, "create vocabulary")
			return
		}
		invalidateVocab(c, rdb)
		logrus.WithFields(logrus.Fields{
			"vocab_id": vocab.ID,
			"admin_id": c.GetString(middleware.ContextUserID),
		}).Info("Vocabulary created")
		c.JSON(http.StatusCreated, vocab)
	}
}

// UpdateVocabHandler applies a partial update to a vocabulary entry
func UpdateVocabHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VocabPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		vocab, err := catalog.UpdateVocab(c.Request.Context(), c.Param("id"), domain.VocabPatch{
			Word:       req.Word,
			Meaning:    req.Meaning,
			AudioURL:   req.AudioURL,
			ImageURL:   req.ImageURL,
			Level:      req.Level,
			CategoryID: req.CategoryID,
		})
		if err != nil {
			respondError(c, err, "update vocabulary")
			return
		}
		invalidateVocab(c, rdb)
		logrus.WithFields(logrus.Fields{
			"vocab_id": vocab.ID,
			"admin_id": c.GetString(middleware.ContextUserID),
		}).Info("Vocabulary updated")
		c.JSON(http.StatusOK, vocab)
	}
}

// DeleteVocabHandler removes a vocabulary entry
func DeleteVocabHandler(catalog *service.CatalogService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := catalog.DeleteVocab(c.Request.Context(), id); err != nil {
			respondError(c, err, "delete vocabulary")
			return
		}
		invalidateVocab(c, rdb)
		logrus.WithFields(logrus.Fields{
			"vocab_id": id,
			"admin_id": c.GetString(middleware.ContextUserID),
		}).Info("Vocabulary deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Vocabulary deleted successfully"})
	}
}

// invalidateVocab drops cached vocabulary lists and stats
func invalidateVocab(c *gin.Context, rdb *redis.Client) {
	if err := utils.DeleteCacheByPrefix(c.Request.Context(), rdb, utils.CachePrefixVocab); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate vocabulary cache")
	}
	invalidateStats(c, rdb)
}
