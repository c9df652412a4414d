package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"nexacare/internal/domain" // Importing domain models
	"nexacare/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// AccountResponse represents the account data returned to HR
type AccountResponse struct {
	ID       uint        `json:"id"`       // Account ID
	Username string      `json:"username"` // Generated username
	Role     domain.Role `json:"role"`     // Account role
	Name     string      `json:"name"`     // Display name
}

// ListAccountsHandler returns all accounts for the HR dashboard
func ListAccountsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Try to get cached response
		var cached struct {
			Accounts []AccountResponse `json:"accounts"` // List of accounts
			Total    int64             `json:"total"`    // Total number of accounts
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, utils.AccountsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"accounts": cached.Accounts, // List of accounts
				"total":    cached.Total,    // Total number of accounts
				"cached":   true,            // Indicate response is from cache
			})
			return
		}
		var total int64 // Total account count
		// Fetch total account count
		if err := db.Model(&domain.Account{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count accounts"}) // Return on error
			return
		}
		var accounts []domain.Account // Slice to hold accounts
		// Fetch accounts ordered by creation
		if err := db.Order("id").Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"}) // Return on error
			return
		}
		// Prepare response data; hashes are never included
		resp := make([]AccountResponse, len(accounts))
		// Map accounts to response format
		for i, a := range accounts {
			resp[i] = AccountResponse{
				ID:       a.ID,       // Account ID
				Username: a.Username, // Username
				Role:     a.Role,     // Account role
				Name:     a.Name,     // Display name
			}
		}
		// Prepare final response data
		respData := gin.H{
			"accounts": resp,  // List of accounts
			"total":    total, // Total number of accounts
			"cached":   false, // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, utils.AccountsCacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}
