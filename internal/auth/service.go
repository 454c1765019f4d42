package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"workshop/internal/common"
	"workshop/internal/metrics"
	"workshop/internal/models"
)

// Service is the account-facing facade: registration, login, logout, account
// deletion, and user views. Script authorization lives in Access.
type Service struct {
	users    UserDirectory
	sessions *Sessions
	access   *Access

	// requireConfirmation gates registration on a matching password
	// confirmation field. Off by default, as in the legacy deployment.
	requireConfirmation bool
}

func NewService(users UserDirectory, sessions *Sessions, access *Access, requireConfirmation bool) *Service {
	return &Service{
		users:               users,
		sessions:            sessions,
		access:              access,
		requireConfirmation: requireConfirmation,
	}
}

// Sessions exposes the underlying session service.
func (s *Service) Sessions() *Sessions { return s.sessions }

// Register creates a new account. Email and pseudo must be unused.
func (s *Service) Register(ctx context.Context, email, password, confirmation, pseudo string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: empty email", common.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}
	if pseudo == "" {
		return nil, fmt.Errorf("%w: empty pseudo", common.ErrInvalidInput)
	}

	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email taken", common.ErrAlreadyExists)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.ByPseudo(ctx, pseudo); err == nil {
		return nil, fmt.Errorf("%w: pseudo taken", common.ErrAlreadyExists)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if s.requireConfirmation && password != confirmation {
		return nil, fmt.Errorf("%w: password confirmation mismatch", common.ErrInvalidInput)
	}

	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Pseudo:       pseudo,
		PasswordHash: digest,
		RoleCode:     int16(RoleUser),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a fresh session token. Existing
// tokens of the user stay valid.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		metrics.LoginFailures.Inc()
		return "", fmt.Errorf("%w: incorrect password", common.ErrUnauthorized)
	}

	return s.sessions.Issue(ctx, user.ID)
}

// Logout revokes the presented token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessions.Revoke(ctx, token)
}

// DeleteAccount removes the caller's account after re-verifying the password.
// Tokens are cleaned up before the user row; the two steps are not atomic, so
// a failure in between leaves only orphan-free state (tokens gone, user
// intact) and the operation can simply be retried.
func (s *Service) DeleteAccount(ctx context.Context, token, password string) (bool, error) {
	actor, err := s.sessions.ResolveUser(ctx, token)
	if err != nil {
		return false, err
	}

	if err := s.access.CanDeleteAccount(ctx, actor, password); err != nil {
		return false, err
	}

	if err := s.sessions.RevokeAll(ctx, actor.ID); err != nil {
		return false, fmt.Errorf("revoke tokens: %w", err)
	}
	if err := s.users.Delete(ctx, actor.ID); err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return true, nil
}

// PublicUser resolves a user by pseudo or id and projects it through its
// privacy flags.
func (s *Service) PublicUser(ctx context.Context, idOrPseudo string) (models.PublicUser, error) {
	if idOrPseudo == "" {
		return models.PublicUser{}, fmt.Errorf("%w: empty user reference", common.ErrInvalidInput)
	}

	user, err := s.users.ByPseudo(ctx, idOrPseudo)
	if errors.Is(err, common.ErrNotFound) {
		id, parseErr := uuid.Parse(idOrPseudo)
		if parseErr != nil {
			return models.PublicUser{}, common.ErrNotFound
		}
		user, err = s.users.ByID(ctx, id)
	}
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.ToPublic(), nil
}

// PrivateUser returns the token owner's full view, password hash excluded.
func (s *Service) PrivateUser(ctx context.Context, token string) (models.PrivateUser, error) {
	user, err := s.sessions.ResolveUser(ctx, token)
	if err != nil {
		return models.PrivateUser{}, err
	}
	return user.ToPrivate(), nil
}

// ProfileUpdate carries optional profile mutations; nil fields are left
// untouched.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Bio            *string
	Website        *string
	Avatar         *string
	Location       *string
	Birthday       *datatypes.Date
	PublicEmail    *bool
	PublicName     *bool
	PublicBirthday *bool
	PublicLocation *bool
}

// UpdateProfile applies the non-nil fields of upd to the token owner.
// Names cannot be set to the empty string; other text fields can be cleared.
func (s *Service) UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.sessions.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		if *upd.FirstName == "" {
			return nil, fmt.Errorf("%w: empty first name", common.ErrInvalidInput)
		}
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		if *upd.LastName == "" {
			return nil, fmt.Errorf("%w: empty last name", common.ErrInvalidInput)
		}
		user.LastName = *upd.LastName
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	if upd.Website != nil {
		user.Website = *upd.Website
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}
	if upd.Location != nil {
		user.Location = *upd.Location
	}
	if upd.Birthday != nil {
		user.Birthday = upd.Birthday
	}
	if upd.PublicEmail != nil {
		user.PublicEmail = *upd.PublicEmail
	}
	if upd.PublicName != nil {
		user.PublicName = *upd.PublicName
	}
	if upd.PublicBirthday != nil {
		user.PublicBirthday = *upd.PublicBirthday
	}
	if upd.PublicLocation != nil {
		user.PublicLocation = *upd.PublicLocation
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
