package contract

import (
	"context"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/repository/specification"
)

type UserRepository interface {
	// Create persists a new user. A duplicate email surfaces as
	// gorm.ErrDuplicatedKey so the constraint race is still rejected
	// at the storage layer.
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
