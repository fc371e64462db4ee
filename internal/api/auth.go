package api

import (
	"context"                     // Context for session operations
	"user_admin/internal/service" // Account operations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Sessions opens and closes login sessions
type Sessions interface {
	Issue(ctx context.Context, userID uint64) (string, error)
	Invalidate(ctx context.Context, userID uint64) error
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// PasswordRequest is the body of a password change
type PasswordRequest struct {
	Password    string `json:"password"`    // Current password
	NewPassword string `json:"newPassword"` // Replacement password
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(svc *service.AdminService, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		account, err := svc.Authenticate(c.Request.Context(), req.Username, req.Password) // Verify credentials
		if err != nil {
			fail(c, err)
			return
		}
		token, err := sessions.Issue(c.Request.Context(), account.ID) // Open a session
		if err != nil {
			fail(c, err)
			return
		}
		logrus.WithField("user_id", account.ID).Info("Login") // Log successful login
		ok(c, gin.H{"token": token})
	}
}

// LogoutHandler ends the caller's session
func LogoutHandler(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		if err := sessions.Invalidate(c.Request.Context(), me.UserID); err != nil {
			fail(c, err)
			return
		}
		ok(c, nil)
	}
}

// InfoHandler returns the caller's own account
func InfoHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		account, err := svc.Me(c.Request.Context(), me)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{"user": account})
	}
}

// PasswordHandler changes the caller's password; the session ends on success
func PasswordHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		var req PasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if err := svc.RotatePassword(c.Request.Context(), me.UserID, req.Password, req.NewPassword); err != nil {
			fail(c, err)
			return
		}
		ok(c, nil) // Client must log in again
	}
}
