package ports

import (
	"context"

	"github.com/careerhub/resume-api/internal/core/domain"
)

// TokenPair is the ephemeral result of sign-in and refresh. Neither token is
// persisted as-is; only a hash of the refresh token is stored server-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService manages the account credential lifecycle: sign-up, sign-in,
// token rotation, sign-out, and the validation contract consumed by the
// access guard.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name, role string) (*domain.User, error)
	// SignIn fails with domain.ErrInvalidCredentials for both an unknown
	// email and a wrong password; the two are indistinguishable to callers.
	SignIn(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh rotates the token pair: the presented refresh token becomes
	// unusable once the new pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// SignOut clears the account's stored credential. Idempotent.
	SignOut(ctx context.Context, accountID string) error
	// Authenticate validates an access token statelessly and never consults
	// the credential store. Revocation applies to refresh tokens only.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
	// AuthenticateRefresh validates a refresh token including the
	// server-side revocation check, without rotating it.
	AuthenticateRefresh(ctx context.Context, refreshToken string) (*domain.User, error)
}
