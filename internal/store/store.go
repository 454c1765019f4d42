// Package store implements the persistence contracts of the auth and scripts
// packages over PostgreSQL: gorm for record CRUD and listing, the pgx pool
// for raw maintenance queries.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"workshop/internal/auth"
	"workshop/internal/scripts"
)

// Store bundles the database handles shared by the repositories.
type Store struct {
	DB  *pgxpool.Pool
	ORM *gorm.DB
}

func New(pool *pgxpool.Pool, orm *gorm.DB) (*Store, error) {
	if pool == nil {
		return nil, errors.New("store DB is required")
	}
	if orm == nil {
		return nil, errors.New("store ORM is required")
	}
	return &Store{DB: pool, ORM: orm}, nil
}

// Users returns the user directory backed by this store.
func (s *Store) Users() *Users { return &Users{orm: s.ORM} }

// Tokens returns the token store backed by this store.
func (s *Store) Tokens() *Tokens { return &Tokens{orm: s.ORM, pool: s.DB} }

// Scripts returns the script repository backed by this store.
func (s *Store) Scripts() *Scripts { return &Scripts{orm: s.ORM} }

var (
	_ auth.UserDirectory = (*Users)(nil)
	_ auth.TokenStore    = (*Tokens)(nil)
	_ scripts.Repository = (*Scripts)(nil)
)
