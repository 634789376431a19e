// Package repository persists users and leave requests through GORM.
package repository

import (
	"context"                      // Context for queries
	"errors"                       // Error inspection
	"fmt"                          // Error wrapping
	"leave_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository is the credential store
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository wraps db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns the user with exactly this email, or nil
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error // Exact match
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No such user
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns the user with id, or nil
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error // Query by primary key
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No such user
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Insert stores user and fills in its id and timestamps.
// The unique index on email is the authority on duplicates.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error // Insert user
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail // Unique index on email hit
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
