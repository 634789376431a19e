package db

import (
	"context"                      // Context for seeding queries
	"errors"                       // Error inspection
	"fmt"                          // Error wrapping
	"leave_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.LeaveRequest{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedAdmin creates the default admin account unless the email is already taken
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	var existing domain.User // Look for an existing account
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil // Already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	// Hash the password and create the admin
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := domain.User{
		Email:     email,            // Admin email
		Password:  string(hash),     // Hashed password
		FirstName: "Admin",          // Display first name
		LastName:  "User",           // Display last name
		Role:      domain.RoleAdmin, // Admin role
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	logrus.WithField("email", email).Info("Default admin user created") // Log seed
	return true, nil
}
