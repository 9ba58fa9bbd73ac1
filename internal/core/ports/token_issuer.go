package ports

import "time"

// TokenKind selects which lifetime and signing secret a token uses.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenClaims is the decoded payload of a verified token.
type TokenClaims struct {
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer creates and validates signed, expiring tokens. Issue and Verify
// are pure functions of the account id, clock, and secret, so they are safe
// for concurrent use from any number of request handlers.
type TokenIssuer interface {
	Issue(accountID string, kind TokenKind) (string, error)
	// Verify fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
	// Tokens signed for a different kind are rejected as invalid.
	Verify(token string, kind TokenKind) (*TokenClaims, error)
}
