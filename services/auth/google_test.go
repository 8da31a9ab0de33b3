package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "client-123.apps.googleusercontent.com"

type googleFixture struct {
	key      *rsa.PrivateKey
	provider *GoogleProvider
	hits     int
}

func newGoogleFixture(t *testing.T) *googleFixture {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &googleFixture{key: key}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits++
		_ = json.NewEncoder(w).Encode(GoogleJWKResponse{Keys: []GoogleJWK{{
			Kid: "kid-1",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	t.Cleanup(srv.Close)

	f.provider = NewGoogleProvider(testClientID, "secret", "http://localhost/callback")
	f.provider.CertsURL = srv.URL
	return f
}

func (f *googleFixture) sign(t *testing.T, claims jwt.MapClaims, kid string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	s, err := token.SignedString(f.key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"aud":   testClientID,
		"iss":   "https://accounts.google.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"email": "Guest@Villa.Test",
		"name":  "Guest",
	}
}

func TestGoogleProvider_ValidateIDToken(t *testing.T) {
	f := newGoogleFixture(t)

	profile, err := f.provider.ValidateIDToken(context.Background(), f.sign(t, validClaims(), "kid-1"))
	require.NoError(t, err)
	assert.Equal(t, "guest@villa.test", profile.Email)
	assert.Equal(t, "Guest", profile.Name)

	// Keys are cached between validations.
	_, err = f.provider.ValidateIDToken(context.Background(), f.sign(t, validClaims(), "kid-1"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.hits)
}

func TestGoogleProvider_RejectsBadTokens(t *testing.T) {
	f := newGoogleFixture(t)

	wrongAud := validClaims()
	wrongAud["aud"] = "someone-else"
	wrongIss := validClaims()
	wrongIss["iss"] = "https://evil.test"
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noEmail := validClaims()
	delete(noEmail, "email")

	tests := []struct {
		name  string
		token string
	}{
		{"wrong audience", f.sign(t, wrongAud, "kid-1")},
		{"wrong issuer", f.sign(t, wrongIss, "kid-1")},
		{"expired", f.sign(t, expired, "kid-1")},
		{"missing email", f.sign(t, noEmail, "kid-1")},
		{"unknown kid", f.sign(t, validClaims(), "kid-2")},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.provider.ValidateIDToken(context.Background(), tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGoogleProvider_Initiate(t *testing.T) {
	p := NewGoogleProvider(testClientID, "secret", "http://localhost/callback")
	u, err := p.Initiate(context.Background(), "state-xyz")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://accounts.google.com/"))
	assert.Contains(t, u, "state=state-xyz")
	assert.Contains(t, u, "client_id="+testClientID)

	_, err = NewGoogleProvider("", "", "").Initiate(context.Background(), "s")
	assert.Error(t, err)
}
