package contract

import (
	"context"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	// Touch bumps the chat's updated_at so the recency ordering in listings
	// follows the latest appended message.
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
