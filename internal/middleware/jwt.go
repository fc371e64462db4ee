package middleware

import (
	"context"                    // Context for session lookups
	"errors"                     // Error matching
	"net/http"                   // HTTP status codes
	"strings"                    // String manipulation
	"user_admin/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// callerKey is the gin context key holding the domain.CallerIdentity
const callerKey = "caller"

// SessionValidator resolves a bearer token into the caller it was issued to
type SessionValidator interface {
	Validate(ctx context.Context, token string) (domain.CallerIdentity, error)
}

// JWTAuthMiddleware validates JWT tokens against the active session and stores the caller
func JWTAuthMiddleware(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "kind": domain.KindUnauthorized, "msg": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")           // Extract the token string
		caller, err := sessions.Validate(c.Request.Context(), tokenStr) // Parse the token and check the session
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				logrus.WithError(err).Error("Session lookup failed") // Infrastructure failure, not a bad token
			}
			// If validation fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "kind": domain.KindUnauthorized, "msg": "Invalid or expired token"})
			return
		}
		c.Set(callerKey, caller) // Store caller in context
		c.Next()                 // Proceed to the next handler
	}
}

// Caller returns the identity stored by JWTAuthMiddleware
func Caller(c *gin.Context) (domain.CallerIdentity, bool) {
	v, exists := c.Get(callerKey) // Get caller from context
	if !exists {
		return domain.CallerIdentity{}, false
	}
	caller, ok := v.(domain.CallerIdentity) // Assert stored type
	return caller, ok
}
