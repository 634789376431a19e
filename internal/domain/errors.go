package domain

import "errors"

var (
	ErrNotFound           = errors.New("leave request not found")                // No row matched
	ErrDuplicateEmail     = errors.New("user already exists")                    // Email unique constraint
	ErrInvalidCredentials = errors.New("invalid credentials")                    // Unknown email or wrong password
	ErrInvalidToken       = errors.New("invalid token")                          // Bad signature, malformed or expired
	ErrUnauthorized       = errors.New("unauthorized")                           // No usable identity
	ErrForbidden          = errors.New("insufficient permissions")               // Role not allowed
	ErrConflict           = errors.New("leave request has already been decided") // Status is no longer pending
)

// ValidationError reports the first input field that failed validation
type ValidationError struct {
	Field   string // Offending field
	Message string // Human-readable message
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError for field
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
