// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateJWT(7, "buddy", "buddy@example.com", true, 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "buddy", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "7", claims.Subject)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	token, err := GenerateJWT(7, "buddy", "buddy@example.com", false, -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestRefreshTokenAudience(t *testing.T) {
	refresh, err := GenerateRefreshToken(9, 24)
	require.NoError(t, err)

	id, err := ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)

	access, err := GenerateJWT(9, "x", "x@example.com", false, 1)
	require.NoError(t, err)
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)

	// A refresh token carries no user id claim, so it never authenticates a request.
	claims, err := ValidateJWT(refresh)
	require.NoError(t, err)
	assert.Zero(t, claims.UserID)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	token, err := GenerateJWT(1, "a", "a@example.com", false, 1)
	require.NoError(t, err)

	SetJWTSecret("rotated")
	defer SetJWTSecret("your-secret-key-change-in-production")

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
