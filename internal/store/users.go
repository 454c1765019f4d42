package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workshop/internal/common"
	"workshop/internal/models"
)

// Users is the gorm-backed user directory.
type Users struct {
	orm *gorm.DB
}

func (r *Users) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.orm.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return &user, nil
}

func (r *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.orm.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return &user, nil
}

func (r *Users) ByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	var user models.User
	err := r.orm.WithContext(ctx).Where("pseudo = ?", pseudo).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query user by pseudo: %w", err)
	}
	return &user, nil
}

func (r *Users) Create(ctx context.Context, user *models.User) error {
	if err := r.orm.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Users) Update(ctx context.Context, user *models.User) error {
	if err := r.orm.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *Users) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.orm.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
