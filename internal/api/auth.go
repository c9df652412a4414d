package api

import (
	"context"  // Context for Redis invalidation
	"errors"   // Error matching against the taxonomy
	"net/http" // HTTP status codes

	"nexacare/internal/domain" // Importing domain models
	"nexacare/internal/flow"   // Login/registration/reset flows
	"nexacare/internal/store"  // Error taxonomy
	"nexacare/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request and Response structs
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`             // Display name must be provided
	Password        string `json:"password" binding:"required"`         // Password must be provided
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Confirmation must be provided
	Role            string `json:"role" binding:"required"`             // doctor or hr
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for password reset
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`     // Username must be provided
	NewPassword string `json:"new_password" binding:"required"` // New password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string      `json:"token"` // JWT session token
	Role  domain.Role `json:"role"`  // Dashboard the session lands on
}

// statusFor maps a taxonomy member to an HTTP status and a short
// human-readable message. Storage-engine error text never reaches the body.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrMissingField):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, store.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords do not match"
	case errors.Is(err, store.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role. Allowed values are 'doctor' or 'hr'"
	case errors.Is(err, store.ErrDuplicateUsername):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, store.ErrInvalidUsername):
		return http.StatusUnauthorized, "Invalid username"
	case errors.Is(err, store.ErrInvalidPassword):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Account not found"
	default:
		// ErrStorage / ErrStorageUnavailable and anything unclassified
		return http.StatusInternalServerError, "Something went wrong. Please try again"
	}
}

// RegisterHandler creates a new account and returns its generated username
func RegisterHandler(svc *flow.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		// Run the registration flow; role validation happens in the store
		account, err := svc.Register(c.Request.Context(), req.Name, req.Password, req.ConfirmPassword, domain.Role(req.Role))
		if err != nil {
			status, msg := statusFor(err) // Map taxonomy member to response
			c.JSON(status, gin.H{"error": msg})
			return
		}
		// Log successful registration (never the password or hash)
		logrus.WithFields(logrus.Fields{
			"username": account.Username, // Generated username
			"role":     account.Role,     // Account role
		}).Info("Account registered")
		// Invalidate listing and dashboard caches for the new role
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, utils.AccountsCacheKey)
		_ = utils.DeleteCache(ctx, rdb, utils.DashboardCacheKey(account.Role))
		// Return the generated username shown to the user
		c.JSON(http.StatusCreated, gin.H{
			"username": account.Username, // e.g. 2025D0001
			"message":  "Account created successfully",
		})
	}
}

// LoginHandler authenticates an account and returns a JWT session token
func LoginHandler(svc *flow.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		// Run the authentication flow
		account, err := svc.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			status, msg := statusFor(err) // Map taxonomy member to response
			c.JSON(status, gin.H{"error": msg})
			return
		}
		// Generate JWT token carrying username and role
		token, err := utils.GenerateJWT(account.Username, account.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"username": account.Username, // Account username
			"role":     account.Role,     // Account role
		}).Info("Login succeeded")
		// Return the token and role; the shell picks the dashboard from the role
		c.JSON(http.StatusOK, AuthResponse{Token: token, Role: account.Role})
	}
}

// ResetPasswordHandler overwrites the stored hash for a username. There is
// no ownership challenge before the reset; every reset is logged with the
// target username so the gap is auditable.
func ResetPasswordHandler(svc *flow.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		// Run the reset flow
		if err := svc.ResetPassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
			status, msg := statusFor(err) // Map taxonomy member to response
			c.JSON(status, gin.H{"error": msg})
			return
		}
		// Log the reset with the target username
		logrus.WithFields(logrus.Fields{
			"username": req.Username, // Target account
		}).Warn("Password reset")
		// Invalidate the cached profile for the account
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProfileCacheKey(req.Username))
		// Return success message
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}
