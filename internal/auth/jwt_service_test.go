package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret")

	accessID, access, err := service.GenerateAccessToken(7, "g@example.com")
	require.NoError(t, err)
	refreshID, refresh, err := service.GenerateRefreshToken(7, "g@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, accessID, refreshID)

	claims, err := service.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "g@example.com", claims.Email)
	assert.Equal(t, accessID, claims.ID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.InDelta(t, AccessTokenExpiry.Seconds(), service.RemainingTTL(claims).Seconds(), 5)

	claims, err = service.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, refreshID, claims.ID)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.InDelta(t, RefreshTokenExpiry.Seconds(), service.RemainingTTL(claims).Seconds(), 5)
}

func TestJWTService_ValidateTokenRejects(t *testing.T) {
	service := NewJWTService("test-secret")

	_, foreign, err := NewJWTService("other-secret").GenerateAccessToken(1, "a@example.com")
	require.NoError(t, err)

	expiredService := NewJWTService("test-secret")
	expiredService.now = func() time.Time { return time.Now().Add(-time.Hour) }
	_, expired, err := expiredService.GenerateAccessToken(1, "a@example.com")
	require.NoError(t, err)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ID: "x"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": foreign,
		"expired":      expired,
		"missing id":   noID,
		"unsigned":     none,
		"not a jwt":    "abc.def",
		"empty string": "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := service.ValidateToken(token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_RemainingTTL(t *testing.T) {
	service := NewJWTService("test-secret")
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	assert.Equal(t, time.Duration(0), service.RemainingTTL(&Claims{}))
	assert.Equal(t, time.Duration(0), service.RemainingTTL(&Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second))},
	}))
	assert.Equal(t, 10*time.Minute, service.RemainingTTL(&Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute))},
	}))
}
