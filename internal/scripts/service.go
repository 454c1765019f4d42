package scripts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"workshop/internal/auth"
	"workshop/internal/common"
	"workshop/internal/models"
)

// DefaultLanguage tags scripts created without an explicit language.
const DefaultLanguage = "python"

// Repository is the persistence contract for scripts. Implementations return
// common.ErrNotFound for absent records and execute Query descriptors without
// interpreting them further.
type Repository interface {
	Insert(ctx context.Context, script *models.Script) error
	ByID(ctx context.Context, id uuid.UUID) (*models.Script, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q Query) ([]models.Script, error)
}

// Service gates script CRUD and listing behind the access engine.
type Service struct {
	repo    Repository
	access  *auth.Access
	builder *QueryBuilder
}

func NewService(repo Repository, access *auth.Access) *Service {
	return &Service{
		repo:    repo,
		access:  access,
		builder: NewQueryBuilder(access),
	}
}

// Create stores a new script owned by the token's user.
func (s *Service) Create(ctx context.Context, token, name, description, code string, isPublic bool, language string) (*models.Script, error) {
	user, err := s.access.CanCreateScript(ctx, token)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%w: empty name", common.ErrInvalidInput)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", common.ErrInvalidInput)
	}
	if language == "" {
		language = DefaultLanguage
	}

	script := &models.Script{
		Name:        name,
		Description: description,
		Code:        code,
		Language:    language,
		IsPublic:    isPublic,
		AuthorID:    user.ID,
	}
	if err := s.repo.Insert(ctx, script); err != nil {
		return nil, fmt.Errorf("create script: %w", err)
	}
	return script, nil
}

// Get returns the script if the caller may read it. Private scripts of other
// users are indistinguishable from absent ones.
func (s *Service) Get(ctx context.Context, token string, id uuid.UUID) (*models.Script, error) {
	script, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanReadScript(ctx, script, token); err != nil {
		return nil, err
	}
	return script, nil
}

// Delete removes the script if the token resolves to its author.
func (s *Service) Delete(ctx context.Context, token string, id uuid.UUID) error {
	script, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.CanDeleteScript(ctx, script, token); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List builds the bounded query descriptor for the caller and executes it.
// A bad token degrades to public-only visibility instead of failing.
func (s *Service) List(ctx context.Context, search string, opts *Options, token string) ([]models.Script, error) {
	q, err := s.builder.Build(ctx, search, opts, token)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}
