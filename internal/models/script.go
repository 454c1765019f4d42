package models

import (
	"time"

	"github.com/google/uuid"
)

// Script is a shared calculator program. Likes is only a sort key for the
// "popular" listing; nothing in the core mutates it.
type Script struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Code        string    `gorm:"type:text;not null"`
	Language    string    `gorm:"type:text;not null;default:'python'"`
	IsPublic    bool      `gorm:"not null;default:false;index"`
	Likes       int64     `gorm:"not null;default:0"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime"`

	Author User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID"`
}

// ScriptView is the wire representation of a script.
type ScriptView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	IsPublic    bool      `json:"is_public"`
	Likes       int64     `json:"likes"`
	AuthorID    uuid.UUID `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Script) ToView() ScriptView {
	return ScriptView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Code:        s.Code,
		Language:    s.Language,
		IsPublic:    s.IsPublic,
		Likes:       s.Likes,
		AuthorID:    s.AuthorID,
		CreatedAt:   s.CreatedAt,
	}
}
