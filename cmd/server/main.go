package main

import (
	"context"                       // context package is needed for Redis operations
	"log"                           // log package is needed for logging
	"nexacare/internal/api"         // Custom package for API handlers
	"nexacare/internal/config"      // Custom package for configuration
	"nexacare/internal/db"          // Custom package for database access
	"nexacare/internal/domain"      // Domain models
	"nexacare/internal/flow"        // Login/registration/reset flows
	"nexacare/internal/middleware"  // Custom package for middleware
	"nexacare/internal/store"       // Credential store

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database using the configured DSN
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Construct the credential store and establish the accounts table
	accounts := store.New(gdb)
	if err := accounts.Init(context.Background()); err != nil {
		logrus.Fatalf("failed to initialize account store: %v", err)
	}
	flows := flow.NewService(accounts) // Flows run over the injected store

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/register", api.RegisterHandler(flows, redisClient))        // Registration endpoint
	r.POST("/login", api.LoginHandler(flows, cfg.JWTSecret))            // Login endpoint
	r.POST("/password/reset", api.ResetPasswordHandler(flows, redisClient)) // Password reset endpoint

	// Dashboard routes (protected by JWT)
	dashboardGroup := r.Group("/dashboard")
	// Protect dashboard routes with JWT middleware
	dashboardGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	dashboardGroup.GET("", api.DashboardHandler(gdb, redisClient))       // Sidebar tabs and stats endpoint
	dashboardGroup.GET("/profile", api.ProfileHandler(gdb, redisClient)) // Profile endpoint

	// HR routes (protected, hr only)
	hrGroup := r.Group("/hr")
	// Protect HR routes with JWT and role-gate middleware
	hrGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireRole(gdb, domain.RoleHR))
	hrGroup.GET("/accounts", api.ListAccountsHandler(gdb, redisClient)) // Account listing endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
