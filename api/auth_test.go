package api

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestIssueAndVerifyToken(t *testing.T) {
	a := NewAuth([]byte("test-secret"))

	token, err := a.IssueToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := a.UserIDFromAuthHeader("Bearer " + token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != "user-123" {
		t.Fatalf("expected user-123, got %q", got)
	}
}

func TestAuthHeaderParsing(t *testing.T) {
	a := NewAuth([]byte("test-secret"))
	token, err := a.IssueToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"missing scheme", token},
		{"wrong scheme", "Basic " + token},
		{"not a jwt", "Bearer notatoken"},
		{"blank", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := a.UserIDFromAuthHeader(tc.header); err == nil {
				t.Fatalf("expected error for header %q", tc.header)
			}
		})
	}

	if _, err := a.UserIDFromAuthHeader("bearer " + token); err != nil {
		t.Fatalf("scheme should be case-insensitive: %v", err)
	}
}

func TestTokenSignedWithWrongSecretRejected(t *testing.T) {
	issuer := NewAuth([]byte("other-secret"))
	token, err := issuer.IssueToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	a := NewAuth([]byte("test-secret"))
	if _, err := a.UserIDFromAuthHeader("Bearer " + token); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"sub": "user-123",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	a := NewAuth(secret)
	if _, err := a.UserIDFromAuthHeader("Bearer " + token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenWithoutSubRejected(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	a := NewAuth(secret)
	_, err = a.UserIDFromAuthHeader("Bearer " + token)
	if err == nil || !strings.Contains(err.Error(), "sub") {
		t.Fatalf("expected missing sub error, got %v", err)
	}
}
