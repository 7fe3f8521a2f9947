package services

import (
	"testing"

	"github.com/bako110/Sonaby/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	jwt := NewJWTService(testConfig())

	token, err := jwt.GenerateAccessToken(12, "agent@sonaby.ne", models.RoleAgentControle)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "agent@sonaby.ne", claims.Email)
	assert.Equal(t, models.RoleAgentControle, claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	jwt := NewJWTService(testConfig())

	token, err := jwt.GenerateRefreshToken(12)
	require.NoError(t, err)

	userID, err := jwt.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), userID)

	// the jti keeps tokens distinct even in the same second
	second, err := jwt.GenerateRefreshToken(12)
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestTokenFamiliesAreSeparate(t *testing.T) {
	jwt := NewJWTService(testConfig())

	access, err := jwt.GenerateAccessToken(12, "agent@sonaby.ne", models.RoleAdmin)
	require.NoError(t, err)
	refresh, err := jwt.GenerateRefreshToken(12)
	require.NoError(t, err)

	// a refresh token must never pass as an access token
	_, err = jwt.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = jwt.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	jwt := NewJWTService(testConfig())

	_, err := jwt.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
	_, err = jwt.ValidateRefreshToken("")
	assert.Error(t, err)
}
