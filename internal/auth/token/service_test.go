package token

import (
	"testing"
	"time"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: "test-secret", TTL: 3600 * time.Second})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewService_RequiresSecret(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected an error without a signing secret")
	}
}

func TestService_IssueParseRoundtrip(t *testing.T) {
	svc := newTestService(t)

	signed, err := svc.Issue("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if signed == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("expected subject user-123, got %q", claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", claims.Email)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 3600*time.Second {
		t.Errorf("expected 3600s lifetime, got %s", got)
	}
}

func TestService_ParseExpired(t *testing.T) {
	svc := newTestService(t)

	issued := time.Now()
	svc.WithClock(func() time.Time { return issued })
	signed, err := svc.Issue("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Before expiry the token verifies.
	svc.WithClock(func() time.Time { return issued.Add(3599 * time.Second) })
	if _, err := svc.Parse(signed); err != nil {
		t.Fatalf("Parse before expiry: %v", err)
	}

	// After the 3600-second window it fails with TOKEN_EXPIRED.
	svc.WithClock(func() time.Time { return issued.Add(3601 * time.Second) })
	_, err = svc.Parse(signed)
	if err == nil {
		t.Fatal("expected an error for expired token")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeTokenExpired) {
		t.Errorf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestService_ParseTampered(t *testing.T) {
	svc := newTestService(t)
	signed, err := svc.Issue("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	_, err = svc.Parse(tampered)
	if err == nil {
		t.Fatal("expected an error for tampered token")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestService_ParseMalformed(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Parse("garbage")
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN for malformed input, got %v", err)
	}
}

func TestService_WrongSecretFailsVerification(t *testing.T) {
	svc := newTestService(t)
	signed, err := svc.Issue("user-123", "a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := NewService(Config{Secret: "other-secret"})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := other.Parse(signed); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN with wrong secret, got %v", err)
	}
}
