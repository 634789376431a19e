package utils

import (
	"errors"
	"testing"
	"time"

	"leave_system/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue(domain.Identity{ID: 7, Email: "a@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenDefaultsToSevenDays(t *testing.T) {
	svc := NewTokenService("secret", 0)
	token, err := svc.Issue(domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleEmployee})
	require.NoError(t, err)
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	good, err := svc.Issue(domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleEmployee})
	require.NoError(t, err)

	expiredSvc := NewTokenService("secret", time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue(domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleEmployee})
	require.NoError(t, err)

	otherKey, err := NewTokenService("other", time.Hour).Issue(domain.Identity{ID: 1})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":    "not-a-token",
		"expired":      expired,
		"wrong secret": otherKey,
		"alg none":     unsigned,
		"tampered":     good[:len(good)-2] + "xx",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.True(t, errors.Is(err, domain.ErrInvalidToken), "got %v", err)
		})
	}
}
