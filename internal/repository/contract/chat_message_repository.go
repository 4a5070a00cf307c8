package contract

import (
	"context"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountForOwner counts messages across every chat the user owns,
	// joining through chats so other users' data never leaks in.
	CountForOwner(ctx context.Context, userID uuid.UUID) (int64, error)
}
