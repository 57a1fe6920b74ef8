package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"vocab_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// conflictMessages renders conflict reasons for clients
var conflictMessages = map[string]string{
	domain.ReasonDependentVocabulary: "dependent vocabulary exists",
	domain.ReasonAlreadySaved:        "already saved",
	domain.ReasonDuplicateName:       "category name already exists",
	domain.ReasonDuplicateEmail:      "email already registered",
}

// notFoundMessages renders missing entities for clients
var notFoundMessages = map[string]string{
	domain.EntityCategory:   "category not found",
	domain.EntityVocabulary: "vocabulary not found",
	domain.EntitySavedWord:  "saved word not found",
	domain.EntityUser:       "user not found",
}

// statusFor maps an error kind to its HTTP status
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// messageFor renders a client facing message; storage details never leave the server
func messageFor(err error) string {
	var e *domain.Error
	if !errors.As(err, &e) {
		return "Internal server error"
	}
	switch e.Kind {
	case domain.KindValidation:
		return e.Field + " " + e.Reason
	case domain.KindConflict:
		if msg, ok := conflictMessages[e.Reason]; ok {
			return msg
		}
		return "conflict"
	case domain.KindNotFound:
		if msg, ok := notFoundMessages[e.Entity]; ok {
			return msg
		}
		return "not found"
	case domain.KindAuth:
		return e.Reason
	default:
		return "Internal server error"
	}
}

// respondError writes the error response and logs server side failures
func respondError(c *gin.Context, err error, action string) {
	status := statusFor(domain.KindOf(err))
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"action": action,
			"path":   c.FullPath(),
		}).WithError(err).Error("Request failed")
	}
	c.JSON(status, gin.H{"message": messageFor(err)})
}

// badRequest reports a body that could not be bound
func badRequest(c *gin.Context, err error) {
	logrus.WithError(err).Debug("Invalid request body")
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
}
