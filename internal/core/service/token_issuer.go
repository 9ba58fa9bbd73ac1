package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

// TokenIssuer signs and verifies HS256 tokens. Access and refresh tokens use
// distinct secrets, so a token presented for the wrong kind fails signature
// verification and cannot be confused for the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue creates a signed token for accountID with the lifetime of the given kind.
func (t *TokenIssuer) Issue(accountID string, kind ports.TokenKind) (string, error) {
	secret, ttl, err := t.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(secret)
}

// Verify decodes and validates a token of the given kind. The subject,
// issued-at, and expiry claims must all be present.
func (t *TokenIssuer) Verify(token string, kind ports.TokenKind) (*ports.TokenClaims, error) {
	secret, _, err := t.kindParams(kind)
	if err != nil {
		return nil, err
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{
		AccountID: claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (t *TokenIssuer) kindParams(kind ports.TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case ports.TokenAccess:
		return t.accessSecret, t.accessTTL, nil
	case ports.TokenRefresh:
		return t.refreshSecret, t.refreshTTL, nil
	default:
		return nil, 0, domain.ErrTokenInvalid
	}
}
