package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func expiredJWT(t *testing.T) string {
	t.Helper()
	return signedJWT(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	t.Run("expired token", func(t *testing.T) {
		token := signedJWT(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
		assert.True(t, TokenExpired(token, now))
	})

	t.Run("valid token", func(t *testing.T) {
		token := signedJWT(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
		assert.False(t, TokenExpired(token, now))
	})

	t.Run("no exp claim", func(t *testing.T) {
		token := signedJWT(t, jwt.MapClaims{"sub": "user-1"})
		assert.False(t, TokenExpired(token, now))
	})

	t.Run("opaque token left to the backend", func(t *testing.T) {
		assert.False(t, TokenExpired("not-a-jwt", now))
	})

	t.Run("empty token", func(t *testing.T) {
		assert.False(t, TokenExpired("", now))
	})
}
