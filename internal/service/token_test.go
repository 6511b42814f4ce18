package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	userID := uuid.New()

	token, err := tm.Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(token.ExpiresAt) <= 0 {
		t.Fatalf("token must expire in the future")
	}

	got, err := tm.ParseAccess(token.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	userID := uuid.New()

	other, err := NewTokenManager("another-secret", time.Minute).Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.ParseAccess(other.Token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}

	expired, err := NewTokenManager("test-secret", -time.Minute).Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.ParseAccess(expired.Token); err == nil {
		t.Fatalf("expired token must be rejected")
	}

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	signed, err := foreign.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.ParseAccess(signed); err == nil {
		t.Fatalf("token from another issuer must be rejected")
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID.String(),
		Issuer:  "upcycle-backend",
	})
	signed, err = noExp.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.ParseAccess(signed); err == nil {
		t.Fatalf("token without exp must be rejected")
	}

	if _, err := tm.ParseAccess("not-a-jwt"); err == nil {
		t.Fatalf("garbage must be rejected")
	}
}
