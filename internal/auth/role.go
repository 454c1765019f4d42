package auth

import (
	"context"
	"fmt"

	"workshop/internal/common"
	"workshop/internal/models"
)

// Role is the closed set of account roles. The stored role code is the
// ordinal; anything outside the set is a data-integrity failure, not a
// default.
type Role int16

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int16(r))
	}
}

// RoleOf decodes the stored role code of a user.
func RoleOf(u *models.User) (Role, error) {
	if u == nil {
		return 0, fmt.Errorf("%w: nil user", common.ErrInvalidState)
	}
	role := Role(u.RoleCode)
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return role, nil
	default:
		return 0, fmt.Errorf("%w: unknown role code %d", common.ErrInvalidState, u.RoleCode)
	}
}

// IsAdmin reports whether the user carries the admin role.
func IsAdmin(u *models.User) (bool, error) {
	role, err := RoleOf(u)
	if err != nil {
		return false, err
	}
	return role == RoleAdmin, nil
}

// RoleOfToken resolves the token to its owner and returns the owner's role.
// Session and directory failures propagate unchanged.
func (s *Sessions) RoleOfToken(ctx context.Context, token string) (Role, error) {
	user, err := s.ResolveUser(ctx, token)
	if err != nil {
		return 0, err
	}
	return RoleOf(user)
}

// RoleOfPseudo looks the user up by pseudo and returns their role.
func (s *Sessions) RoleOfPseudo(ctx context.Context, pseudo string) (Role, error) {
	user, err := s.users.ByPseudo(ctx, pseudo)
	if err != nil {
		return 0, err
	}
	return RoleOf(user)
}
