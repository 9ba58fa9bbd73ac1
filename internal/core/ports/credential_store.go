package ports

import "context"

// CredentialStore persists one hashed refresh token per account. Overwriting
// the hash is the revocation mechanism for the previously issued token.
type CredentialStore interface {
	// Save hashes refreshToken and upserts the account's credential record,
	// invalidating any prior token.
	Save(ctx context.Context, accountID, refreshToken string) error
	// Clear nulls the stored hash (sign-out). Clearing an absent or already
	// cleared record is a no-op.
	Clear(ctx context.Context, accountID string) error
	// Matches reports whether candidate matches the stored hash. Returns
	// false (not an error) when no record exists or the record is cleared.
	Matches(ctx context.Context, accountID, candidate string) (bool, error)
}
