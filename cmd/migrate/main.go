package main

import (
	"nexacare/internal/config" // Custom import path (Config)
	"nexacare/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Run schema migration against the configured database
	db.Migrate(cfg.DSN())
}
