package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestTokenIdentity(t *testing.T) {
	exp := time.Date(2031, 5, 6, 7, 8, 9, 0, time.UTC)
	token := signed(t, jwt.MapClaims{
		"sub":                "1234",
		"email":              "ops@example.com",
		"preferred_username": "ops",
		"iss":                "https://idp.example.com",
		"exp":                exp.Unix(),
	})

	id, err := TokenIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "1234", id.Subject)
	assert.Equal(t, "ops@example.com", id.Email)
	assert.Equal(t, "ops", id.Username)
	assert.Equal(t, "https://idp.example.com", id.Issuer)
	assert.True(t, exp.Equal(id.ExpiresAt))
	assert.Equal(t, "ops@example.com", id.Display())
}

func TestTokenIdentityDisplayFallback(t *testing.T) {
	id, err := TokenIdentity(signed(t, jwt.MapClaims{"sub": "svc", "preferred_username": "robot"}))
	require.NoError(t, err)
	assert.Equal(t, "robot", id.Display())

	id, err = TokenIdentity(signed(t, jwt.MapClaims{"sub": "svc"}))
	require.NoError(t, err)
	assert.Equal(t, "svc", id.Display())
}

func TestTokenIdentityOpaque(t *testing.T) {
	_, err := TokenIdentity("opaque-token")
	require.Error(t, err)
}
