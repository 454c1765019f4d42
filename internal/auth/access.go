package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"workshop/internal/common"
	"workshop/internal/models"
)

// Visibility is the declarative predicate handed to the query layer: public
// scripts always match, and when Owner is set the owner's private scripts
// match too.
type Visibility struct {
	Owner *uuid.UUID
}

// PublicOnly is the anonymous visibility clause.
func PublicOnly() Visibility { return Visibility{} }

// Access decides what a caller may do with accounts and scripts.
type Access struct {
	sessions *Sessions
}

func NewAccess(sessions *Sessions) *Access {
	return &Access{sessions: sessions}
}

// CanDeleteAccount authorizes deletion of the actor's own account. Admin
// accounts are categorically undeletable through this path, regardless of the
// supplied password; for everyone else the password must verify. The caller
// is responsible for revoking the actor's tokens before removing the record.
func (a *Access) CanDeleteAccount(ctx context.Context, actor *models.User, password string) error {
	admin, err := IsAdmin(actor)
	if err != nil {
		return err
	}
	if admin {
		return fmt.Errorf("%w: admin accounts cannot be deleted", common.ErrForbidden)
	}

	ok, err := VerifyPassword(password, actor.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: incorrect password", common.ErrUnauthorized)
	}
	return nil
}

// CanReadScript authorizes reading a script. Public scripts are readable by
// anyone, token or not. Private scripts are readable only by their author;
// any other outcome collapses into the same common.ErrNotFound so existence of
// the script is never revealed.
func (a *Access) CanReadScript(ctx context.Context, script *models.Script, token string) error {
	if script.IsPublic {
		return nil
	}

	user, err := a.sessions.ResolveUser(ctx, token)
	if err != nil {
		return common.ErrNotFound
	}
	if user.ID != script.AuthorID {
		return common.ErrNotFound
	}
	return nil
}

// CanDeleteScript authorizes deletion: only the author, holding a valid
// token, may delete a script.
func (a *Access) CanDeleteScript(ctx context.Context, script *models.Script, token string) error {
	user, err := a.sessions.ResolveUser(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: not the script author", common.ErrForbidden)
	}
	if user.ID != script.AuthorID {
		return fmt.Errorf("%w: not the script author", common.ErrForbidden)
	}
	return nil
}

// CanCreateScript requires a valid token and returns the acting user.
func (a *Access) CanCreateScript(ctx context.Context, token string) (*models.User, error) {
	user, err := a.sessions.ResolveUser(ctx, token)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// VisibilityClause shapes listing for the caller. Token-resolution failures
// are swallowed here on purpose: listing degrades to public-only instead of
// failing on a bad or expired token.
func (a *Access) VisibilityClause(ctx context.Context, token string) Visibility {
	if token == "" {
		return PublicOnly()
	}
	user, err := a.sessions.ResolveUser(ctx, token)
	if err != nil {
		return PublicOnly()
	}
	id := user.ID
	return Visibility{Owner: &id}
}
