package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only-key"))
	require.NoError(t, err)
	return s
}

func TestParseTokenSubject_Success(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	sub, err := ParseTokenSubject(token)

	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestParseTokenSubject_ExpiredStillParsed(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	sub, err := ParseTokenSubject(token)

	require.NoError(t, err)
	assert.Equal(t, "user-7", sub)
}

func TestParseTokenSubject_NoSubject(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{Issuer: "sync"})

	_, err := ParseTokenSubject(token)

	assert.ErrorIs(t, err, ErrTokenWithoutSubject)
}

func TestParseTokenSubject_Malformed(t *testing.T) {
	for _, token := range []string{"", "opaque-session-token", "a.b.c"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseTokenSubject(token)
			assert.Error(t, err)
		})
	}
}
