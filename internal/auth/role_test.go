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

func TestRoleOf(t *testing.T) {
	tests := []struct {
		code int16
		want Role
	}{
		{code: 0, want: RoleUser},
		{code: 1, want: RoleModerator},
		{code: 2, want: RoleAdmin},
	}
	for _, tc := range tests {
		role, err := RoleOf(&models.User{RoleCode: tc.code})
		require.NoError(t, err)
		assert.Equal(t, tc.want, role)
	}
}

func TestRoleOfUnknownCode(t *testing.T) {
	for _, code := range []int16{-1, 3, 42} {
		_, err := RoleOf(&models.User{RoleCode: code})
		assert.ErrorIs(t, err, common.ErrInvalidState)
	}

	_, err := RoleOf(nil)
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "moderator", RoleModerator.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "role(9)", Role(9).String())
}

func TestIsAdmin(t *testing.T) {
	admin, err := IsAdmin(&models.User{RoleCode: int16(RoleAdmin)})
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = IsAdmin(&models.User{RoleCode: int16(RoleModerator)})
	require.NoError(t, err)
	assert.False(t, admin)

	_, err = IsAdmin(&models.User{RoleCode: 7})
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestRoleOfToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	sessions := NewSessions(users, newFakeTokens(), time.Hour)

	mod := &models.User{Email: "mod@example.com", Pseudo: "mod", RoleCode: int16(RoleModerator)}
	require.NoError(t, users.Create(ctx, mod))

	token, err := sessions.Issue(ctx, mod.ID)
	require.NoError(t, err)

	role, err := sessions.RoleOfToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, RoleModerator, role)

	_, err = sessions.RoleOfToken(ctx, "bogus")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestRoleOfPseudo(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	sessions := NewSessions(users, newFakeTokens(), time.Hour)

	require.NoError(t, users.Create(ctx, &models.User{Email: "a@example.com", Pseudo: "alice", RoleCode: int16(RoleAdmin)}))

	role, err := sessions.RoleOfPseudo(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = sessions.RoleOfPseudo(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
