package utils

import (
	"fmt"                          // Error wrapping
	"leave_system/internal/domain" // Importing domain models
	"time"                         // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// DefaultTokenTTL is how long issued tokens stay valid when no TTL is configured
const DefaultTokenTTL = 7 * 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               uint        `json:"id"`    // Subject user ID
	Email                string      `json:"email"` // Email at issue time
	Role                 domain.Role `json:"role"`  // Role at issue time, may go stale
	jwt.RegisteredClaims             // Standard JWT claims
}

// TokenService issues and verifies signed identity tokens
type TokenService struct {
	secret []byte        // HMAC secret
	ttl    time.Duration // Token lifetime
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL // Fall back to seven days
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a JWT token for the given identity
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	now := s.now()
	// Set token claims
	claims := Claims{
		UserID: identity.ID,    // Subject user ID
		Email:  identity.Email, // Email claim
		Role:   identity.Role,  // Role claim
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)), // Token expires after the configured TTL
			IssuedAt:  jwt.NewNumericDate(now),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// Verify parses and validates a JWT token string
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		// Only accept HMAC signatures
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil // Return the secret key for validation
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	// Check for parsing errors
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
