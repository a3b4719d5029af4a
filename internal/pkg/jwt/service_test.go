package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", 15*time.Minute)
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.CandidateID != id || claims.Subject != id.String() {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestHMACService_Expired(t *testing.T) {
	issuer := NewHMACService("secret", 15*time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := issuer.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = NewHMACService("secret", 15*time.Minute).ValidateToken(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_Invalid(t *testing.T) {
	tok, err := NewHMACService("secret", time.Minute).GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	cases := map[string]string{
		"wrong secret": tok,
		"garbage":      "not-a-token",
		"tampered":     tok + "x",
	}
	other := NewHMACService("other", time.Minute)
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewHMACService("secret", time.Minute)
			if name == "wrong secret" {
				svc = other
			}
			if _, err := svc.ValidateToken(in); !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestHMACService_RefusesToSignWithoutSecret(t *testing.T) {
	if _, err := NewHMACService("", time.Minute).GenerateAccessToken(uuid.New()); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := NewHMACService("secret", time.Minute).GenerateAccessToken(uuid.Nil); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for nil id, got %v", err)
	}
}
