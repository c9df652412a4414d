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

// Tab is one sidebar navigation entry of the dashboard shell
type Tab struct {
	Name    string `json:"name"`    // Tab identifier, e.g. "patients"
	Tooltip string `json:"tooltip"` // Label shown on hover
	Icon    string `json:"icon"`    // Icon asset name
}

// StatBox is one placeholder stats box on the dashboard tab
type StatBox struct {
	Title string `json:"title"` // Box title
	Value int64  `json:"value"` // Displayed count
	Color string `json:"color"` // Accent color
}

// Sidebar tabs of the dashboard shell, same set for both roles
var dashboardTabs = []Tab{
	{Name: "dashboard", Tooltip: "Dashboard", Icon: "bxs-dashboard"},
	{Name: "patients", Tooltip: "Patients", Icon: "bxs-group"},
	{Name: "appointments", Tooltip: "Appointments", Icon: "bxs-calendar"},
	{Name: "settings", Tooltip: "Settings", Icon: "bxs-cog"},
}

// DashboardHandler returns the sidebar tabs and placeholder stats for the
// caller's role, cached per role
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role") // Get role from context
		// Check if role exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()                            // Context for Redis operations
		cacheKey := utils.DashboardCacheKey(role.(domain.Role)) // Per-role cache key
		// Try to get cached response
		var cached struct {
			Tabs  []Tab     `json:"tabs"`  // Sidebar tabs
			Stats []StatBox `json:"stats"` // Placeholder stats
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"tabs":   cached.Tabs,  // Sidebar tabs
				"stats":  cached.Stats, // Placeholder stats
				"cached": true,         // Indicate response is from cache
			})
			return
		}
		var doctors, hrs int64 // Account counts per role
		// Count doctor accounts
		if err := db.Model(&domain.Account{}).Where("role = ?", domain.RoleDoctor).Count(&doctors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"}) // Return on error
			return
		}
		// Count hr accounts
		if err := db.Model(&domain.Account{}).Where("role = ?", domain.RoleHR).Count(&hrs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"}) // Return on error
			return
		}
		// Placeholder stats boxes mirroring the original dashboard tab
		stats := []StatBox{
			{Title: "Doctors", Value: doctors, Color: "#3b8eed"},
			{Title: "HR Staff", Value: hrs, Color: "#2ecc71"},
		}
		// Prepare final response data
		respData := gin.H{
			"tabs":   dashboardTabs, // Sidebar tabs
			"stats":  stats,         // Placeholder stats
			"cached": false,         // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// ProfileHandler returns the caller's account, never including the hash
func ProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, exists := c.Get("username") // Get username from context
		// Check if username exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()                          // Context for Redis operations
		cacheKey := utils.ProfileCacheKey(username.(string)) // Per-account cache key
		// Try to get cached response
		var cached domain.Account
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"account": cached, "cached": true}) // Return cached account
			return
		}
		var account domain.Account // Fetch account from database
		if err := db.Where("username = ?", username).First(&account).Error; err != nil {
			// If account not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		// Cache the account for future requests; the hash is excluded by the
		// model's json tag
		_ = utils.SetCache(ctx, rdb, cacheKey, account, 5*time.Minute)
		c.JSON(http.StatusOK, gin.H{"account": account, "cached": false}) // Return the account
	}
}
