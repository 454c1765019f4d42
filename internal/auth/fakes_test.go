package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"workshop/internal/common"
	"workshop/internal/models"
)

type fakeUsers struct {
	records map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{records: make(map[uuid.UUID]*models.User)}
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

func newFakeTokens() *fakeTokens {
	return &fakeTokens{records: make(map[string]*models.Token)}
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
