package implementation

import (
	"context"
	"errors"
	"time"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/mapper"
	"chat-journal-be/internal/model"
	"chat-journal-be/internal/repository/contract"
	"chat-journal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRepositoryImpl) Create(ctx context.Context, chat *entity.Chat) error {
	modelChat := r.mapper.ChatToModel(chat)
	if err := r.db.WithContext(ctx).Create(modelChat).Error; err != nil {
		return err
	}
	*chat = *r.mapper.ChatToEntity(modelChat)
	return nil
}

func (r *ChatRepositoryImpl) Update(ctx context.Context, chat *entity.Chat) error {
	modelChat := r.mapper.ChatToModel(chat)
	if err := r.db.WithContext(ctx).Save(modelChat).Error; err != nil {
		return err
	}
	*chat = *r.mapper.ChatToEntity(modelChat)
	return nil
}

func (r *ChatRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r *ChatRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete; messages go with it via the ON DELETE CASCADE constraint.
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Chat{}).Error
}

func (r *ChatRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	var modelChat model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelChat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ChatToEntity(&modelChat), nil
}

func (r *ChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var modelChats []*model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelChats).Error; err != nil {
		return nil, err
	}

	return r.mapper.ChatsToEntities(modelChats), nil
}

func (r *ChatRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chat{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
