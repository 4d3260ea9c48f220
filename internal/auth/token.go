// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLength is the shortest configured secret accepted.
const minSecretLength = 32

var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("auth: missing bearer token")

	// ErrInvalidToken is returned for a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrWeakSecret is returned for a configured secret shorter than 32 bytes.
	ErrWeakSecret = errors.New("auth: session secret must be at least 32 characters")
)

// Claims identify the session a token was issued for. The session ID is the
// standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionID returns the session the token grants access to.
func (c *Claims) SessionID() string {
	return c.Subject
}

// TokenManager issues and checks HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a manager. An empty secret is replaced by 32
// random bytes, so tokens from a previous process stop validating.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	var key []byte
	switch {
	case secret == "":
		key = make([]byte, minSecretLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	case len(secret) < minSecretLength:
		return nil, ErrWeakSecret
	default:
		key = []byte(secret)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: key, ttl: ttl, issuer: "cinematch"}, nil
}

// Issue signs a token for sessionID.
func (m *TokenManager) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}
	return strings.TrimSpace(parts[1]), nil
}
