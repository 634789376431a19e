package domain

import "time"

// Role of a user account
type Role string

const (
	RoleAdmin    Role = "admin"    // Can list and decide every leave request
	RoleEmployee Role = "employee" // Can submit and list own leave requests
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User Model
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`                                   // Primary key
	Email         string         `gorm:"size:255;uniqueIndex;not null" json:"email"`             // Unique email, stored as given
	Password      string         `gorm:"size:255;not null" json:"-"`                             // Hashed password, never serialized
	FirstName     string         `gorm:"size:100;not null" json:"firstName"`                     // First name
	LastName      string         `gorm:"size:100;not null" json:"lastName"`                      // Last name
	Role          Role           `gorm:"type:varchar(20);not null;default:employee" json:"role"` // Role: admin or employee
	CreatedAt     time.Time      `json:"createdAt"`                                              // Creation timestamp
	UpdatedAt     time.Time      `json:"updatedAt"`                                              // Last update timestamp
	LeaveRequests []LeaveRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many, removed with the user
}

// FullName joins first and last name
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	ID    uint   `json:"id"`    // User ID
	Email string `json:"email"` // User email
	Role  Role   `json:"role"`  // Current role
}

// Identity returns the identity view of the user
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
