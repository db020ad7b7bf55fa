package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	svc := NewJWTService(testConfig(t))

	token, err := svc.GenerateToken(42, "clerk1", "clerk")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "clerk1", claims.Username)
	assert.Equal(t, "clerk", claims.Role)
	assert.Equal(t, "barangay-document-service", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig(t)
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	cfg.JWTSecretKey = "another-secret"
	other := NewJWTService(cfg)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenTampered(t *testing.T) {
	svc := NewJWTService(testConfig(t))

	token, err := svc.GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig(t)
	svc := NewJWTService(cfg).(*JWTService)

	claims := &JWTClaims{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "barangay-document-service",
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecretKey))
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)
}
