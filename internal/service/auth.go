// Package service implements registration, login and the leave request workflow.
package service

import (
	"context"                      // Context for store calls
	"errors"                       // Error inspection
	"fmt"                          // Message formatting
	"leave_system/internal/domain" // Importing domain models
	"sync"                         // Synchronization primitives

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// maxPasswordBytes is the most bcrypt will hash
const maxPasswordBytes = 72

// UserStore is the credential store the services depend on
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
}

// TokenIssuer signs identity tokens
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// RegisterInput is a validated registration payload
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role // Empty means employee
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// AuthService handles registration and login
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	cost   int
	log    logrus.FieldLogger

	decoyOnce sync.Once
	decoy     []byte // Hash compared against when the email is unknown
}

// NewAuthService creates an AuthService hashing with bcrypt.DefaultCost
func NewAuthService(users UserStore, tokens TokenIssuer, log logrus.FieldLogger) *AuthService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost, log: log}
}

// WithHashCost overrides the bcrypt cost, mainly so tests run fast
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Register creates an account and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleEmployee // Default role
	}
	if !role.Valid() {
		return nil, domain.Invalid("role", `"role" must be one of [admin, employee]`)
	}
	if len(in.Password) > maxPasswordBytes {
		// bcrypt limit is in bytes, not characters
		return nil, domain.Invalid("password", fmt.Sprintf(`"password" length must be less than or equal to %d bytes`, maxPasswordBytes))
	}

	// Pre-check gives a clean error in the common case; the unique index settles races
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost) // Hash password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err // Duplicate email or store failure
	}

	token, err := s.tokens.Issue(user.Identity()) // Sign token for the new user
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return &AuthResult{Token: token, User: *user}, nil
}

// Login checks credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email) // Look up account
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.decoyHash(), []byte(password))
		s.log.WithField("email", email).Info("Login with unknown email")
		return nil, domain.ErrInvalidCredentials
	}
	// Compare password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("Stored password hash is unusable")
		}
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.log.WithField("user_id", user.ID).Info("User logged in")
	return &AuthResult{Token: token, User: *user}, nil
}

// decoyHash is built on first use at the configured cost
func (s *AuthService) decoyHash() []byte {
	s.decoyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), s.cost)
		if err != nil {
			s.log.WithError(err).Error("Failed to build decoy password hash")
			return
		}
		s.decoy = hash
	})
	return s.decoy
}
