package middleware

import (
	"net/http"                   // HTTP status codes
	"user_admin/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ActiveAccountMiddleware checks on each request that the caller's account still exists and is enabled
func ActiveAccountMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, exists := Caller(c) // Get caller from context
		// Check if caller exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "kind": domain.KindUnauthorized, "msg": "Unauthorized"})
			return
		}
		var account domain.Account // Fetch account from database
		if err := db.WithContext(c.Request.Context()).Select("user_id", "status").First(&account, "user_id = ?", caller.UserID).Error; err != nil {
			// If account deleted or any error, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "kind": domain.KindUnauthorized, "msg": "Account no longer exists"})
			return
		}
		// Check if account is enabled
		if account.Status != domain.StatusActive {
			// If disabled, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "kind": domain.KindUnauthorized, "msg": "Account is disabled"})
			return
		}
		// If active, proceed to the next handler
		c.Next()
	}
}
