package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("secret")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	token, err := m.NewJWT("user-42", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	subject, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subject != "user-42" {
		t.Errorf("expected user-42, got %q", subject)
	}
}

func TestManagerRejects(t *testing.T) {
	m, _ := NewManager("secret")
	other, _ := NewManager("other-secret")

	expired, _ := m.NewJWT("user-42", -time.Minute)
	foreign, _ := other.NewJWT("user-42", time.Minute)
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("secret"))

	for name, token := range map[string]string{
		"expired":    expired,
		"foreign":    foreign,
		"no subject": noSubject,
		"garbage":    "not.a.token",
	} {
		if _, err := m.Parse(token); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNewManagerEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
