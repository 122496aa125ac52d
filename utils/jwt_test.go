package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shophub/config"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: "1h",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken(42, "user@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken(1, "user@example.com", "customer")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
}
