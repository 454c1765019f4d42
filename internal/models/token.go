package models

import (
	"time"

	"github.com/google/uuid"
)

// Token is an opaque bearer session credential. Expiry is computed from
// CreatedAt, never stored: a token past its window is invalid whether or not
// the sweeper has removed it yet.
type Token struct {
	Value     string    `gorm:"type:text;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`

	User User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
}

func (Token) TableName() string { return "tokens" }

// ExpiresAt returns the end of the validity window for the given TTL.
func (t *Token) ExpiresAt(ttl time.Duration) time.Time {
	return t.CreatedAt.Add(ttl)
}
