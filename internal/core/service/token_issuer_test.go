package service

import (
	"testing"
	"time"

	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := issuer.Issue("user_1", ports.TokenAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := issuer.Verify(token, ports.TokenAccess)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.AccountID != "user_1" {
		t.Fatalf("expected account user_1, got %s", claims.AccountID)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expected expiry after issue time: iat=%v exp=%v", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestTokenIssuer_RefreshRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := issuer.Issue("user_2", ports.TokenRefresh)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(token, ports.TokenRefresh)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.AccountID != "user_2" {
		t.Fatalf("expected account user_2, got %s", claims.AccountID)
	}
}

func TestTokenIssuer_WrongKindRejected(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, err := issuer.Issue("user_1", ports.TokenAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(access, ports.TokenRefresh); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for access token verified as refresh, got %v", err)
	}

	refresh, err := issuer.Issue("user_1", ports.TokenRefresh)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := issuer.Verify(refresh, ports.TokenAccess); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for refresh token verified as access, got %v", err)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := issuer.Issue("user_1", ports.TokenAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(token, ports.TokenAccess); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(token, ports.TokenAccess); err != domain.ErrTokenInvalid {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", token, err)
		}
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewTokenIssuer("different", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := issuer.Issue("user_1", ports.TokenAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(token, ports.TokenAccess); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestTokenIssuer_UnknownKind(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	if _, err := issuer.Issue("user_1", ports.TokenKind("session")); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for unknown kind, got %v", err)
	}
	if _, err := issuer.Verify("whatever", ports.TokenKind("session")); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for unknown kind, got %v", err)
	}
}
