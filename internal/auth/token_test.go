// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenManager(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{"generated secret", "", nil},
		{"configured secret", testSecret, nil},
		{"short secret", "too-short", ErrWeakSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewTokenManager(tt.secret, time.Hour)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && m == nil {
				t.Fatal("manager is nil")
			}
		})
	}
}

func TestIssueAndValidate(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := m.Issue("session-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.SessionID() != "session-1" {
		t.Errorf("SessionID = %q, want session-1", claims.SessionID())
	}
}

func TestValidate_Rejects(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)
	other, _ := NewTokenManager("", time.Hour)
	foreign, _ := other.Issue("session-1")

	expired := &TokenManager{secret: []byte(testSecret), ttl: -time.Minute, issuer: "cinematch"}
	stale, _ := expired.Issue("session-1")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "session-1", Issuer: "cinematch"}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"garbage":        "not.a.token",
		"wrong secret":   foreign,
		"expired":        stale,
		"none algorithm": unsigned,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"missing", "", "", ErrMissingToken},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", ErrInvalidToken},
		{"empty token", "Bearer   ", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := BearerToken(r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(httpOK())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	h.ServeHTTP(rec, req)

	for _, name := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options"} {
		if rec.Header().Get(name) == "" {
			t.Errorf("missing %s", name)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}

	rec = httptest.NewRecorder()
	req.Header.Set("X-Forwarded-Proto", "https")
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Header().Get("Strict-Transport-Security"), "max-age") {
		t.Error("HSTS missing behind HTTPS proxy")
	}
}

func httpOK() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
