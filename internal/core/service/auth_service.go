package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

// AttemptLimiter abstracts the sign-in throttle (Redis). A limiter outage
// must not lock users out, so callers treat errors as a pass-through.
type AttemptLimiter interface {
	// Allow reports whether another sign-in attempt is permitted for key.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempt counter after a successful sign-in.
	Reset(ctx context.Context, key string) error
}

// AuthService orchestrates the credential lifecycle: sign-up, sign-in with
// token-pair issuance, refresh rotation, and sign-out revocation.
type AuthService struct {
	users   ports.UserRepository
	creds   ports.CredentialStore
	issuer  ports.TokenIssuer
	limiter AttemptLimiter
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	creds ports.CredentialStore,
	issuer ports.TokenIssuer,
	limiter AttemptLimiter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, creds: creds, issuer: issuer, limiter: limiter, log: log}
}

func (s *AuthService) SignUp(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleApplicant
	}
	if role != domain.RoleApplicant && role != domain.RoleRecruiter {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("account created")
	return created, nil
}

// SignIn authenticates by email and password and issues a fresh token pair.
// An unknown email and a wrong password produce the same error so the
// response cannot be used to enumerate accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("attempt limiter unavailable, allowing sign-in")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset attempt counter")
	}

	s.log.Info().Str("user_id", user.ID).Msg("sign-in succeeded")
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair, rotating the stored
// credential. The presented token becomes unusable the moment the new pair is
// saved, so at most one of two concurrent calls with the same token succeeds.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.issuer.Verify(refreshToken, ports.TokenRefresh)
	if err != nil {
		return nil, err
	}

	ok, err := s.creds.Matches(ctx, claims.AccountID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Structurally valid but unmatched: the token was rotated away or
		// revoked by sign-out. Logged here; the response is a generic 401.
		s.log.Warn().Str("user_id", claims.AccountID).Msg("refresh token revoked or already rotated")
		return nil, domain.ErrTokenRevoked
	}

	pair, err := s.issuePair(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", claims.AccountID).Msg("token pair rotated")
	return pair, nil
}

// SignOut clears the account's stored refresh-token hash. Clearing an already
// cleared record is a no-op, so repeated sign-outs always succeed.
func (s *AuthService) SignOut(ctx context.Context, accountID string) error {
	if err := s.creds.Clear(ctx, accountID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", accountID).Msg("signed out")
	return nil
}

// Authenticate validates an access token and loads its account. Access tokens
// are stateless and trusted until expiry; revoking a refresh token does not
// invalidate outstanding access tokens.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.issuer.Verify(accessToken, ports.TokenAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateRefresh validates a refresh token including the server-side
// revocation check, without rotating it. Used by the refresh guard on
// sign-out.
func (s *AuthService) AuthenticateRefresh(ctx context.Context, refreshToken string) (*domain.User, error) {
	claims, err := s.issuer.Verify(refreshToken, ports.TokenRefresh)
	if err != nil {
		return nil, err
	}

	ok, err := s.creds.Matches(ctx, claims.AccountID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Warn().Str("user_id", claims.AccountID).Msg("revoked refresh token presented")
		return nil, domain.ErrTokenRevoked
	}

	user, err := s.users.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

// issuePair mints both tokens and upserts the refresh-token hash, revoking
// whatever token the account held before.
func (s *AuthService) issuePair(ctx context.Context, accountID string) (*ports.TokenPair, error) {
	access, err := s.issuer.Issue(accountID, ports.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.Issue(accountID, ports.TokenRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.creds.Save(ctx, accountID, refresh); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
