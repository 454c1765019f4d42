package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"workshop/internal/common"
	"workshop/internal/metrics"
	"workshop/internal/models"
)

// DefaultTokenTTL is the validity window of a session token, computed from
// its creation time. Tokens are not refreshed on use.
const DefaultTokenTTL = 24 * time.Hour

const tokenBytes = 32

// UserDirectory is the persistence contract for user records.
// Implementations return common.ErrNotFound for absent records.
type UserDirectory interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByPseudo(ctx context.Context, pseudo string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenStore is the persistence contract for session tokens.
type TokenStore interface {
	Insert(ctx context.Context, token *models.Token) error
	Find(ctx context.Context, value string) (*models.Token, error)
	Delete(ctx context.Context, value string) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sessions issues, validates, revokes, and sweeps opaque bearer tokens.
type Sessions struct {
	users  UserDirectory
	tokens TokenStore
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions wires a session service over the given stores. A non-positive
// ttl falls back to DefaultTokenTTL.
func NewSessions(users UserDirectory, tokens TokenStore, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Sessions{
		users:  users,
		tokens: tokens,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured validity window.
func (s *Sessions) TTL() time.Duration { return s.ttl }

func newTokenValue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates a new token for the user. Other tokens of the same user stay
// valid; concurrent sessions are allowed.
func (s *Sessions) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return "", err
	}

	value, err := newTokenValue()
	if err != nil {
		return "", err
	}

	token := &models.Token{
		Value:     value,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.tokens.Insert(ctx, token); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	metrics.TokensIssued.Inc()
	return value, nil
}

// Validate reports whether the token exists and is inside its validity
// window. It fails closed on any lookup problem and never mutates state:
// an aged-out token is rejected here even before the sweeper removes it.
func (s *Sessions) Validate(ctx context.Context, value string) bool {
	if value == "" {
		return false
	}
	token, err := s.tokens.Find(ctx, value)
	if err != nil {
		return false
	}
	return s.now().Sub(token.CreatedAt) < s.ttl
}

// ResolveUser returns the owner of a valid token. An invalid token is
// common.ErrUnauthorized. A valid token whose owner record is gone should not
// happen given cascade deletes, but the store is an external boundary, so it
// is checked and surfaces as common.ErrNotFound.
func (s *Sessions) ResolveUser(ctx context.Context, value string) (*models.User, error) {
	if !s.Validate(ctx, value) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.Find(ctx, value)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.users.ByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: token owner missing", common.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// Revoke deletes the token. Revoking an empty or never-issued token is not an
// error, just false.
func (s *Sessions) Revoke(ctx context.Context, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	if err := s.tokens.Delete(ctx, value); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	metrics.TokensRevoked.Inc()
	return true, nil
}

// RevokeAll drops every token of a user. Used before account deletion.
func (s *Sessions) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.DeleteForUser(ctx, userID)
}

// SweepExpired deletes every token past its validity window and returns the
// count. Validate checks age independently, so the sweep is storage hygiene,
// not a correctness requirement.
func (s *Sessions) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.ttl)
	count, err := s.tokens.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep expired tokens: %w", err)
	}
	metrics.TokensSwept.Add(float64(count))
	return count, nil
}
