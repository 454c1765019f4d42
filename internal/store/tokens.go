package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"workshop/internal/common"
	"workshop/internal/db"
	"workshop/internal/models"
)

// Tokens is the session-token store. Record lookups go through gorm; the
// sweep works on the raw pool so it stays cheap on large backlogs.
type Tokens struct {
	orm  *gorm.DB
	pool *pgxpool.Pool
}

func (r *Tokens) Insert(ctx context.Context, token *models.Token) error {
	if err := r.orm.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *Tokens) Find(ctx context.Context, value string) (*models.Token, error) {
	var token models.Token
	err := r.orm.WithContext(ctx).Where("value = ?", value).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query token: %w", err)
	}
	return &token, nil
}

func (r *Tokens) Delete(ctx context.Context, value string) error {
	res := r.orm.WithContext(ctx).Where("value = ?", value).Delete(&models.Token{})
	if res.Error != nil {
		return fmt.Errorf("delete token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *Tokens) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	err := r.orm.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Token{}).Error
	if err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}
	return nil
}

// DeleteCreatedBefore selects the expired token values first and deletes
// exactly that set, so the returned count cannot include tokens issued
// concurrently with the sweep.
func (r *Tokens) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var values []string
	if err := db.Select(ctx, r.pool, &values, `SELECT value FROM tokens WHERE created_at < $1`, cutoff); err != nil {
		return 0, fmt.Errorf("select expired tokens: %w", err)
	}
	if len(values) == 0 {
		return 0, nil
	}

	tag, err := db.Exec(ctx, r.pool, `DELETE FROM tokens WHERE value = ANY($1)`, values)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
