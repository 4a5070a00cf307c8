package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser  MessageRole = "user"
	MessageRoleModel MessageRole = "model"
)

// ValidRole reports whether role is one of the two permitted values.
func ValidRole(role string) bool {
	return role == string(MessageRoleUser) || role == string(MessageRoleModel)
}

// ChatMessage is immutable once created; there is no update path.
type ChatMessage struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	Role      MessageRole
	Content   string
	CreatedAt time.Time
}
