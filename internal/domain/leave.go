package domain

import "time"

// Status of a leave request
type Status string

const (
	StatusPending  Status = "pending"  // Initial state
	StatusApproved Status = "approved" // Terminal, set by an admin
	StatusRejected Status = "rejected" // Terminal, set by an admin
)

// Terminal reports whether s is a decision outcome
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest Model
type LeaveRequest struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                                          // Primary key
	UserID         uint      `gorm:"not null;index" json:"userId"`                                  // Foreign key to User (owner)
	LeaveType      string    `gorm:"size:50;not null" json:"leaveType"`                             // Free-form leave type
	StartDate      Date      `gorm:"type:date;not null" json:"startDate"`                           // First day of leave
	EndDate        Date      `gorm:"type:date;not null" json:"endDate"`                             // Last day of leave
	Reason         string    `gorm:"type:text;not null" json:"reason"`                              // Reason, 10-500 chars
	Status         Status    `gorm:"type:varchar(20);not null;default:pending;index" json:"status"` // pending, approved, rejected
	AdminComment   *string   `gorm:"type:text" json:"adminComment"`                                 // Set only on decision
	AttachmentPath *string   `gorm:"size:500" json:"attachmentPath"`                                // Relative path of the upload
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`                                        // Creation timestamp
	UpdatedAt      time.Time `json:"updatedAt"`                                                     // Last update timestamp
}

// LeaveWithOwner is a leave request joined with its owner's name and email
type LeaveWithOwner struct {
	LeaveRequest        // Embedded leave columns
	FirstName    string `json:"firstName"` // Owner first name
	LastName     string `json:"lastName"`  // Owner last name
	Email        string `json:"email"`     // Owner email
}

// OwnerName joins the owner's first and last name
func (l LeaveWithOwner) OwnerName() string {
	return l.FirstName + " " + l.LastName
}

// DurationDays is the inclusive number of calendar days between start and end
func (l LeaveRequest) DurationDays() int {
	return DaysBetween(l.StartDate, l.EndDate)
}
