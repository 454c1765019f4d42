package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workshop/internal/common"
	"workshop/internal/models"
	"workshop/internal/scripts"
)

// Scripts is the gorm-backed script repository.
type Scripts struct {
	orm *gorm.DB
}

func (r *Scripts) Insert(ctx context.Context, script *models.Script) error {
	if err := r.orm.WithContext(ctx).Create(script).Error; err != nil {
		return fmt.Errorf("insert script: %w", err)
	}
	return nil
}

func (r *Scripts) ByID(ctx context.Context, id uuid.UUID) (*models.Script, error) {
	var script models.Script
	err := r.orm.WithContext(ctx).Where("id = ?", id).First(&script).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query script: %w", err)
	}
	return &script, nil
}

func (r *Scripts) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.orm.WithContext(ctx).Where("id = ?", id).Delete(&models.Script{})
	if res.Error != nil {
		return fmt.Errorf("delete script: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// List executes a normalized query descriptor. The descriptor is trusted as
// already bounded and validated by the builder.
func (r *Scripts) List(ctx context.Context, q scripts.Query) ([]models.Script, error) {
	tx := r.orm.WithContext(ctx).Model(&models.Script{})

	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where(
			r.orm.Where("scripts.name LIKE ?", like).
				Or("scripts.description LIKE ?", like).
				Or("scripts.code LIKE ?", like),
		)
	}
	if q.Language != "" {
		tx = tx.Where("scripts.language = ?", q.Language)
	}
	if q.Author != "" {
		tx = tx.Joins("JOIN users ON users.id = scripts.author_id").
			Where("users.pseudo = ?", q.Author)
	}

	if q.Visibility.Owner != nil {
		tx = tx.Where(
			r.orm.Where("scripts.is_public = ?", true).
				Or("scripts.author_id = ?", *q.Visibility.Owner),
		)
	} else {
		tx = tx.Where("scripts.is_public = ?", true)
	}

	switch q.Sort {
	case scripts.SortNewest:
		tx = tx.Order("scripts.created_at DESC")
	case scripts.SortPopular:
		tx = tx.Order("scripts.likes DESC")
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var out []models.Script
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	return out, nil
}
