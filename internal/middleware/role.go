package middleware

import (
	"net/http"                 // HTTP status codes
	"nexacare/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequireRole checks the account's stored role from the database on each
// request, not just the token claim, so a role claim cannot outlive the row
func RequireRole(db *gorm.DB, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, exists := c.Get("username") // Get username from context
		// Check if username exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var account domain.Account // Fetch account from database
		if err := db.Where("username = ?", username).First(&account).Error; err != nil {
			// If account not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		// Check if the stored role matches the required one
		if account.Role != role {
			// If not, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		// If the role matches, proceed to the next handler
		c.Next()
	}
}
