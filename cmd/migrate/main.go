package main

import (
	"vocab_system/internal/config" // Custom import path (Config)
	"vocab_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg, err := config.Load() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	// Seed the first administrator; registration only creates regular users
	if err := db.SeedAdmin(gdb, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password, cfg.Auth.BcryptCost); err != nil {
		logrus.Fatalf("admin seed failed: %v", err)
	}
}
