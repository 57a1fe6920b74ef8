package api

import (
	"net/http" // HTTP status codes

	"vocab_system/internal/middleware" // Context keys
	"vocab_system/internal/service"    // Business logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// SaveWordRequest is the save body. Older clients send the id as "vocab".
type SaveWordRequest struct {
	VocabID string `json:"vocabId"` // Vocabulary to save
	Vocab   string `json:"vocab"`   // Legacy field name
}

// SaveWordHandler adds a vocabulary entry to the caller's saved words
func SaveWordHandler(study *service.StudyService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID) // Set by JWTAuthMiddleware
		var req SaveWordRequest                         // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		vocabID := req.VocabID
		if vocabID == "" {
			vocabID = req.Vocab
		}
		saved, err := study.SaveWord(c.Request.Context(), userID, vocabID)
		if err != nil {
			respondError(c, err, "save word")
			return
		}
		invalidateStats(c, rdb)
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"vocab_id": saved.VocabID,
			"saved_id": saved.ID,
		}).Info("Word saved")
		c.JSON(http.StatusCreated, saved)
	}
}

// ListSavedWordsHandler returns the caller's saved words, oldest first
func ListSavedWordsHandler(study *service.StudyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := study.ListSavedWords(c.Request.Context(), c.GetString(middleware.ContextUserID))
		if err != nil {
			respondError(c, err, "list saved words")
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// RemoveSavedWordHandler deletes one of the caller's saved words
func RemoveSavedWordHandler(study *service.StudyService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)
		id := c.Param("id")
		if err := study.RemoveSavedWord(c.Request.Context(), userID, id); err != nil {
			respondError(c, err, "remove saved word")
			return
		}
		invalidateStats(c, rdb)
		logrus.WithFields(logrus.Fields{"user_id": userID, "saved_id": id}).Info("Saved word removed")
		c.JSON(http.StatusOK, gin.H{"message": "Saved word removed successfully"})
	}
}
