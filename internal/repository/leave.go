package repository

import (
	"context"                      // Context for queries
	"errors"                       // Error inspection
	"fmt"                          // Error wrapping
	"leave_system/internal/domain" // Importing domain models
	"time"                         // Update timestamps

	"gorm.io/gorm" // GORM ORM library
)

// newestFirst orders by creation time, id breaking ties between rows created in the same tick
const newestFirst = "leave_requests.created_at DESC, leave_requests.id DESC"

// NewLeave carries the fields supplied on submission
type NewLeave struct {
	LeaveType      string      // Free-form type, e.g. Annual
	StartDate      domain.Date // First day off
	EndDate        domain.Date // Last day off
	Reason         string      // Employee's reason
	AttachmentPath *string     // Stored upload path, nil without attachment
}

// LeaveRepository stores leave requests
type LeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository wraps db
func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create inserts a pending leave request owned by ownerID
func (r *LeaveRepository) Create(ctx context.Context, ownerID uint, in NewLeave) (*domain.LeaveRequest, error) {
	leave := &domain.LeaveRequest{
		UserID:         ownerID,
		LeaveType:      in.LeaveType,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Reason:         in.Reason,
		Status:         domain.StatusPending, // Every request starts pending
		AttachmentPath: in.AttachmentPath,
	}
	// Insert leave request
	if err := r.db.WithContext(ctx).Create(leave).Error; err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return leave, nil
}

// ListByOwner returns one page of the owner's requests and the owner's total count
func (r *LeaveRepository) ListByOwner(ctx context.Context, ownerID uint, page, pageSize int) ([]domain.LeaveRequest, int64, error) {
	var total int64 // Owner's total, independent of the page
	base := r.db.WithContext(ctx).Model(&domain.LeaveRequest{}).Where("user_id = ?", ownerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}
	items := make([]domain.LeaveRequest, 0, pageSize) // Empty page encodes as []
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(newestFirst).
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list leave requests: %w", err)
	}
	return items, total, nil
}

// ListAll returns one page of every request joined with its owner, and the total count
func (r *LeaveRepository) ListAll(ctx context.Context, page, pageSize int) ([]domain.LeaveWithOwner, int64, error) {
	var total int64 // Count across all owners
	if err := r.db.WithContext(ctx).Model(&domain.LeaveRequest{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}
	items := make([]domain.LeaveWithOwner, 0, pageSize) // Empty page encodes as []
	err := r.withOwner(ctx).
		Order(newestFirst).
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Scan(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list leave requests with owners: %w", err)
	}
	return items, total, nil
}

// UpdateStatus moves a pending request to status. It reports ErrNotFound when
// no request has this id and ErrConflict when the request was already decided.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status, comment *string) (*domain.LeaveRequest, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.LeaveRequest{}).
		Where("id = ? AND status = ?", id, domain.StatusPending). // Only pending rows move
		Updates(map[string]any{
			"status":        status,
			"admin_comment": comment,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update leave status: %w", res.Error)
	}
	var leave domain.LeaveRequest
	err := r.db.WithContext(ctx).First(&leave, id).Error // Reload to tell missing from decided
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reload leave request: %w", err)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrConflict // Exists but no longer pending
	}
	return &leave, nil
}

// GetWithOwner loads one request joined with its owner, or nil
func (r *LeaveRepository) GetWithOwner(ctx context.Context, id uint) (*domain.LeaveWithOwner, error) {
	var rows []domain.LeaveWithOwner
	err := r.withOwner(ctx).Where("leave_requests.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get leave request with owner: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil // No such request
	}
	return &rows[0], nil
}

// withOwner selects leave columns plus the owner's name and email
func (r *LeaveRepository) withOwner(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, users.first_name, users.last_name, users.email").
		Joins("JOIN users ON users.id = leave_requests.user_id")
}

func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
