package scripts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"workshop/internal/auth"
	"workshop/internal/common"
	"workshop/internal/models"
)

type fakeUsers struct {
	records map[uuid.UUID]*models.User
}

func (f *fakeUsers) ByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.records {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) ByPseudo(_ context.Context, pseudo string) (*models.User, error) {
	for _, user := range f.records {
		if user.Pseudo == pseudo {
			cp := *user
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.records[user.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) error {
	if _, ok := f.records[user.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *user
	f.records[user.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeTokens struct {
	records map[string]*models.Token
}

func (f *fakeTokens) Insert(_ context.Context, token *models.Token) error {
	cp := *token
	f.records[token.Value] = &cp
	return nil
}

func (f *fakeTokens) Find(_ context.Context, value string) (*models.Token, error) {
	token, ok := f.records[value]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *token
	return &cp, nil
}

func (f *fakeTokens) Delete(_ context.Context, value string) error {
	if _, ok := f.records[value]; !ok {
		return common.ErrNotFound
	}
	delete(f.records, value)
	return nil
}

func (f *fakeTokens) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	for value, token := range f.records {
		if token.UserID == userID {
			delete(f.records, value)
		}
	}
	return nil
}

func (f *fakeTokens) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var count int64
	for value, token := range f.records {
		if token.CreatedAt.Before(cutoff) {
			delete(f.records, value)
			count++
		}
	}
	return count, nil
}

// fakeRepo records the last Query it executed so tests can assert on the
// descriptor the service built.
type fakeRepo struct {
	records   map[uuid.UUID]*models.Script
	lastQuery Query
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*models.Script)}
}

func (f *fakeRepo) Insert(_ context.Context, script *models.Script) error {
	if script.ID == uuid.Nil {
		script.ID = uuid.New()
	}
	if script.CreatedAt.IsZero() {
		script.CreatedAt = time.Now().UTC()
	}
	cp := *script
	f.records[script.ID] = &cp
	return nil
}

func (f *fakeRepo) ByID(_ context.Context, id uuid.UUID) (*models.Script, error) {
	script, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *script
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, q Query) ([]models.Script, error) {
	f.lastQuery = q

	var out []models.Script
	for _, script := range f.records {
		if !script.IsPublic && (q.Visibility.Owner == nil || *q.Visibility.Owner != script.AuthorID) {
			continue
		}
		if q.Language != "" && script.Language != q.Language {
			continue
		}
		out = append(out, *script)
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// testEnv wires the real session and access services over in-memory stores.
type testEnv struct {
	sessions *auth.Sessions
	access   *auth.Access
	users    *fakeUsers
	repo     *fakeRepo
	service  *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := &fakeUsers{records: make(map[uuid.UUID]*models.User)}
	tokens := &fakeTokens{records: make(map[string]*models.Token)}
	sessions := auth.NewSessions(users, tokens, 0)
	access := auth.NewAccess(sessions)
	repo := newFakeRepo()
	return &testEnv{
		sessions: sessions,
		access:   access,
		users:    users,
		repo:     repo,
		service:  NewService(repo, access),
	}
}

// login creates a user and returns it with a fresh session token.
func (e *testEnv) login(t *testing.T, email, pseudo string) (*models.User, string) {
	t.Helper()
	digest, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	user := &models.User{Email: email, Pseudo: pseudo, PasswordHash: digest}
	require.NoError(t, e.users.Create(context.Background(), user))

	token, err := e.sessions.Issue(context.Background(), user.ID)
	require.NoError(t, err)
	return user, token
}
