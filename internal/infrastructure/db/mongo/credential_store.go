package mongo

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const collectionCredentials = "credentials"

// CredentialStore keeps one hashed refresh token per account. The document is
// upserted on every save and nulled on sign-out, never deleted.
type CredentialStore struct {
	col *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{col: db.Collection(collectionCredentials)}
}

type credentialDoc struct {
	AccountID        string    `bson:"account_id"`
	RefreshTokenHash *string   `bson:"refresh_token_hash"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

// Save hashes the token and upserts the account's record, revoking whatever
// token was stored before.
func (s *CredentialStore) Save(ctx context.Context, accountID, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	hash, err := hashToken(refreshToken)
	if err != nil {
		return fmt.Errorf("hash refresh token: %w", err)
	}

	_, err = s.col.UpdateOne(ctx,
		bson.M{"account_id": accountID},
		bson.M{"$set": bson.M{
			"refresh_token_hash": hash,
			"updated_at":         time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear nulls the stored hash. Upserting makes the call a no-op for accounts
// that never signed in or already signed out.
func (s *CredentialStore) Clear(ctx context.Context, accountID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.UpdateOne(ctx,
		bson.M{"account_id": accountID},
		bson.M{"$set": bson.M{
			"refresh_token_hash": nil,
			"updated_at":         time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Matches compares candidate against the stored hash. A missing or cleared
// record reports false without error.
func (s *CredentialStore) Matches(ctx context.Context, accountID, candidate string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc credentialDoc
	if err := s.col.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("load credential: %w", err)
	}
	if doc.RefreshTokenHash == nil {
		return false, nil
	}
	return compareToken(*doc.RefreshTokenHash, candidate), nil
}

// EnsureIndexes creates the unique per-account index.
func (s *CredentialStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "account_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// hashToken runs the token through SHA-256 before bcrypt: bcrypt caps its
// input at 72 bytes and signed tokens exceed that.
func hashToken(token string) (string, error) {
	sum := sha256.Sum256([]byte(token))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// compareToken performs the constant-time comparison of candidate against a
// stored hash.
func compareToken(storedHash, candidate string) bool {
	sum := sha256.Sum256([]byte(candidate))
	return bcrypt.CompareHashAndPassword([]byte(storedHash), sum[:]) == nil
}
