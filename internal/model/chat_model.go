package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // owner, enforced on every query
	Title     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// Declared so AutoMigrate emits the FK with ON DELETE CASCADE; the cascade
	// is a schema-level guarantee, not application code.
	Messages []ChatMessage `gorm:"foreignKey:ChatId;constraint:OnDelete:CASCADE"`
}

func (Chat) TableName() string {
	return "chats"
}
