package api

import (
	"errors"                         // Error matching
	"net/http"                       // HTTP status codes
	"user_admin/internal/domain"     // Importing domain models
	"user_admin/internal/middleware" // Caller lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// ok writes a success body merged with payload
func ok(c *gin.Context, payload gin.H) {
	body := gin.H{"code": 0, "msg": "success"} // Legacy success envelope
	for k, v := range payload {
		body[k] = v // Merge payload fields
	}
	c.JSON(http.StatusOK, body)
}

// fail writes a structured error body with a stable kind tag
func fail(c *gin.Context, err error) {
	var e *domain.Error
	// Recoverable, caller-facing failure
	if errors.As(err, &e) {
		status := statusFor(e.Kind) // Map kind to HTTP status
		c.JSON(status, gin.H{"code": status, "kind": e.Kind, "msg": e.Error()})
		return
	}
	// Anything else is an infrastructure failure
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(), // Route
		"error": err.Error(),  // Error message
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "kind": "INTERNAL", "msg": "Internal server error"})
}

// badRequest rejects a request that failed binding
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "kind": domain.KindInvalidAccount, "msg": msg})
}

// statusFor maps an error kind to its HTTP status
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindEmptyNewPassword, domain.KindWrongOldPassword, domain.KindInvalidAccount:
		return http.StatusBadRequest
	case domain.KindEnvironmentLocked, domain.KindDeletionDenied:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// caller returns the authenticated caller or writes 401
func caller(c *gin.Context) (domain.CallerIdentity, bool) {
	id, exists := middleware.Caller(c) // Get caller from context
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "kind": domain.KindUnauthorized, "msg": "Unauthorized"})
	}
	return id, exists
}
