package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, nopMetrics{})

	token, err := svc.IssueToken("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("subject %q, want alice", subject)
	}
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, nopMetrics{})

	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.IssueToken("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just inside the validity window.
	svc.now = func() time.Time { return issued.Add(29 * time.Minute) }
	if _, err := svc.VerifyToken(token); err != nil {
		t.Fatalf("token must still verify before expiry: %v", err)
	}

	// Past expiry.
	svc.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expired token: got %v, want ErrTokenInvalid", err)
	}
}

func TestTokenForgeryRejected(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, nopMetrics{})
	verifier := NewTokenService("secret-b", time.Hour, nopMetrics{})

	token, err := issuer.IssueToken("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong-key token: got %v, want ErrTokenInvalid", err)
	}
	if _, err := verifier.VerifyToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage token: got %v, want ErrTokenInvalid", err)
	}
}
