package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklist holds revoked access tokens until they expire
type TokenBlacklist struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Token     string         `gorm:"type:text;not null;index" json:"token"`
	ExpiredAt time.Time      `gorm:"not null" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

func (t *TokenBlacklist) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
