package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

// GoogleJWK represents a single JSON Web Key from Google's keys endpoint.
type GoogleJWK struct {
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// GoogleJWKResponse represents the response from Google's keys endpoint.
type GoogleJWKResponse struct {
	Keys []GoogleJWK `json:"keys"`
}

// GoogleProvider signs users in with Google without involving the villa API.
type GoogleProvider struct {
	OAuth      *oauth2.Config
	CertsURL   string
	HTTPClient *http.Client
	Now        func() time.Time

	keysMu      sync.RWMutex
	keys        map[string]*rsa.PublicKey
	keysExpires time.Time
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		CertsURL:   googleCertsURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Now:        time.Now,
	}
}

// Initiate returns Google's consent URL carrying state.
func (g *GoogleProvider) Initiate(ctx context.Context, state string) (string, error) {
	if g.OAuth == nil || g.OAuth.ClientID == "" {
		return "", errors.New("google client id is not configured")
	}
	return g.OAuth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Profile exchanges code for tokens and reads email and name from the verified ID token.
func (g *GoogleProvider) Profile(ctx context.Context, code string) (*Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.HTTPClient)
	tok, err := g.OAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange google code: %w", err)
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, errors.New("google token response has no id_token")
	}
	return g.ValidateIDToken(ctx, idToken)
}

// getPublicKeys fetches and caches Google's public keys.
func (g *GoogleProvider) getPublicKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	g.keysMu.RLock()
	if g.now().Before(g.keysExpires) && g.keys != nil {
		defer g.keysMu.RUnlock()
		return g.keys, nil
	}
	g.keysMu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.CertsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google certs returned status %d", resp.StatusCode)
	}

	var keyResp GoogleJWKResponse
	if err := json.NewDecoder(resp.Body).Decode(&keyResp); err != nil {
		return nil, fmt.Errorf("failed to decode Google keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, key := range keyResp.Keys {
		pubKey, err := convertJWKToPublicKey(key.N, key.E)
		if err != nil {
			return nil, fmt.Errorf("failed to convert JWK to public key: %w", err)
		}
		keys[key.Kid] = pubKey
	}

	g.keysMu.Lock()
	g.keys = keys
	// Google rotates keys frequently.
	g.keysExpires = g.now().Add(1 * time.Hour)
	g.keysMu.Unlock()

	return keys, nil
}

// convertJWKToPublicKey converts base64url encoded modulus and exponent to rsa.PublicKey.
func convertJWKToPublicKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var exp int
	for _, b := range eb {
		exp = exp<<8 + int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: exp,
	}, nil
}

// ValidateIDToken verifies signature, audience, issuer and expiry of a Google ID token.
func (g *GoogleProvider) ValidateIDToken(ctx context.Context, tokenStr string) (*Profile, error) {
	keys, err := g.getPublicKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google public keys: %w", err)
	}

	parser := jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, errors.New("token missing kid header")
		}
		pubKey, exists := keys[kid]
		if !exists {
			return nil, errors.New("no matching Google public key found")
		}
		return pubKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid Google ID token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse claims")
	}

	if !claims.VerifyAudience(g.OAuth.ClientID, true) {
		return nil, errors.New("invalid audience in Google ID token")
	}
	if iss, ok := claims["iss"].(string); !ok || (iss != "accounts.google.com" && iss != "https://accounts.google.com") {
		return nil, errors.New("invalid issuer in Google ID token")
	}
	if !claims.VerifyExpiresAt(g.now().Unix(), true) {
		return nil, errors.New("google ID token expired")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("email claim not found in Google ID token")
	}
	name, _ := claims["name"].(string)

	return &Profile{
		Email: strings.ToLower(email),
		Name:  name,
	}, nil
}

func (g *GoogleProvider) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}
