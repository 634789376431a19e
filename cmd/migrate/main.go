package main

import (
	"context"                      // Context for seeding
	"leave_system/internal/config" // Custom import path (Config)
	"leave_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	defer func() { _ = db.Close(gdb) }()

	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	// Ensure an administrator exists
	created, err := db.SeedAdmin(context.Background(), gdb, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logrus.Fatalf("admin seed failed: %v", err)
	}
	if created {
		logrus.WithField("email", cfg.AdminEmail).Info("Admin user created")
	} else {
		logrus.WithField("email", cfg.AdminEmail).Info("Admin user already exists")
	}
}
