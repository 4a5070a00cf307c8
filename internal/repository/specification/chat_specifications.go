package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes chats to their owning user. Every chat query carries this
// filter so one user can never observe another user's rows.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByChatID filters messages by their parent chat
type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}
