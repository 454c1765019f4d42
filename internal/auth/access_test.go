package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop/internal/common"
	"workshop/internal/models"
)

func newTestAccess(t *testing.T) (*Access, *Sessions, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	sessions := NewSessions(users, newFakeTokens(), 0)
	return NewAccess(sessions), sessions, users
}

func TestCanDeleteAccountAdmin(t *testing.T) {
	ctx := context.Background()
	access, _, _ := newTestAccess(t)

	digest, err := HashPassword("s3cret")
	require.NoError(t, err)
	admin := &models.User{Pseudo: "root", PasswordHash: digest, RoleCode: int16(RoleAdmin)}

	// Admins are rejected before the password is even looked at.
	err = access.CanDeleteAccount(ctx, admin, "s3cret")
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = access.CanDeleteAccount(ctx, admin, "wrong")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCanDeleteAccountPassword(t *testing.T) {
	ctx := context.Background()
	access, _, _ := newTestAccess(t)

	digest, err := HashPassword("s3cret")
	require.NoError(t, err)
	user := &models.User{Pseudo: "alice", PasswordHash: digest, RoleCode: int16(RoleUser)}

	assert.NoError(t, access.CanDeleteAccount(ctx, user, "s3cret"))

	err = access.CanDeleteAccount(ctx, user, "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCanDeleteAccountUnknownRole(t *testing.T) {
	ctx := context.Background()
	access, _, _ := newTestAccess(t)

	err := access.CanDeleteAccount(ctx, &models.User{RoleCode: 9}, "s3cret")
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestCanReadScriptPublic(t *testing.T) {
	ctx := context.Background()
	access, _, _ := newTestAccess(t)

	script := &models.Script{Name: "fib", IsPublic: true}

	assert.NoError(t, access.CanReadScript(ctx, script, ""))
	assert.NoError(t, access.CanReadScript(ctx, script, "garbage"))
}

func TestCanReadScriptPrivate(t *testing.T) {
	ctx := context.Background()
	access, sessions, users := newTestAccess(t)

	owner := seedUser(t, users)
	stranger := &models.User{Email: "bob@example.com", Pseudo: "bob", PasswordHash: owner.PasswordHash}
	require.NoError(t, users.Create(ctx, stranger))

	script := &models.Script{Name: "secret", AuthorID: owner.ID}

	ownerToken, err := sessions.Issue(ctx, owner.ID)
	require.NoError(t, err)
	strangerToken, err := sessions.Issue(ctx, stranger.ID)
	require.NoError(t, err)

	assert.NoError(t, access.CanReadScript(ctx, script, ownerToken))

	// Everyone else sees the same not-found, never a forbidden that would
	// confirm the script exists.
	assert.ErrorIs(t, access.CanReadScript(ctx, script, strangerToken), common.ErrNotFound)
	assert.ErrorIs(t, access.CanReadScript(ctx, script, ""), common.ErrNotFound)
	assert.ErrorIs(t, access.CanReadScript(ctx, script, "garbage"), common.ErrNotFound)
}

func TestCanDeleteScript(t *testing.T) {
	ctx := context.Background()
	access, sessions, users := newTestAccess(t)

	owner := seedUser(t, users)
	stranger := &models.User{Email: "bob@example.com", Pseudo: "bob", PasswordHash: owner.PasswordHash}
	require.NoError(t, users.Create(ctx, stranger))

	script := &models.Script{Name: "fib", IsPublic: true, AuthorID: owner.ID}

	ownerToken, err := sessions.Issue(ctx, owner.ID)
	require.NoError(t, err)
	strangerToken, err := sessions.Issue(ctx, stranger.ID)
	require.NoError(t, err)

	assert.NoError(t, access.CanDeleteScript(ctx, script, ownerToken))
	assert.ErrorIs(t, access.CanDeleteScript(ctx, script, strangerToken), common.ErrForbidden)
	assert.ErrorIs(t, access.CanDeleteScript(ctx, script, "garbage"), common.ErrForbidden)
}

func TestCanCreateScript(t *testing.T) {
	ctx := context.Background()
	access, sessions, users := newTestAccess(t)
	user := seedUser(t, users)

	token, err := sessions.Issue(ctx, user.ID)
	require.NoError(t, err)

	got, err := access.CanCreateScript(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = access.CanCreateScript(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVisibilityClause(t *testing.T) {
	ctx := context.Background()
	access, sessions, users := newTestAccess(t)
	user := seedUser(t, users)

	assert.Nil(t, access.VisibilityClause(ctx, "").Owner)
	assert.Nil(t, access.VisibilityClause(ctx, "garbage").Owner)

	token, err := sessions.Issue(ctx, user.ID)
	require.NoError(t, err)

	vis := access.VisibilityClause(ctx, token)
	require.NotNil(t, vis.Owner)
	assert.Equal(t, user.ID, *vis.Owner)
}

func TestVisibilityClauseExpiredToken(t *testing.T) {
	ctx := context.Background()
	access, sessions, users := newTestAccess(t)
	user := seedUser(t, users)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return base }

	token, err := sessions.Issue(ctx, user.ID)
	require.NoError(t, err)

	sessions.now = func() time.Time { return base.Add(DefaultTokenTTL + time.Minute) }

	// An expired token quietly degrades to the anonymous clause.
	assert.Nil(t, access.VisibilityClause(ctx, token).Owner)
}
