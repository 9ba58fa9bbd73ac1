package domain

import (
	"errors"
	"time"
)

const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many sign-in attempts")

// Token verification failures. ErrTokenRevoked is raised when a structurally
// valid refresh token no longer matches the stored credential hash; the
// client-facing response is identical to ErrTokenInvalid so a rejected token
// reveals nothing about server-side state.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrTokenRevoked = errors.New("token revoked")

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Credential is the per-account record backing refresh-token revocation.
// One record per account, reused across sessions; a nil hash means no
// active session.
type Credential struct {
	AccountID        string    `json:"account_id"`
	RefreshTokenHash *string   `json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
}
