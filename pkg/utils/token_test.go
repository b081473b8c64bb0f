package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config := JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	userID := uuid.New()

	token, err := GenerateToken(config, userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(config, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(JWTConfig{Secret: "secret-a", ExpiryHours: 1}, uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = VerifyToken(JWTConfig{Secret: "secret-b", ExpiryHours: 1}, token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken(JWTConfig{Secret: "secret", ExpiryHours: 1}, "not-a-jwt")
	assert.Error(t, err)
}
