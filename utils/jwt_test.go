package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSigner_RoundTrip(t *testing.T) {
	signer, err := NewSessionSigner("secret")
	require.NoError(t, err)

	token, err := signer.GenerateToken("session-1", time.Hour)
	require.NoError(t, err)

	id, err := signer.ExtractSessionID(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)
}

func TestSessionSigner_Rejects(t *testing.T) {
	signer, err := NewSessionSigner("secret")
	require.NoError(t, err)
	other, err := NewSessionSigner("other")
	require.NoError(t, err)

	expired, err := signer.GenerateToken("session-1", -time.Minute)
	require.NoError(t, err)
	foreign, err := other.GenerateToken("session-1", time.Hour)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "session-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"foreign":    foreign,
		"no subject": noSubject,
		"unsigned":   unsigned,
		"garbage":    "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := signer.ExtractSessionID(token)
			assert.Error(t, err)
		})
	}
}

func TestNewSessionSigner_EmptySecret(t *testing.T) {
	_, err := NewSessionSigner("")
	assert.Error(t, err)
}
