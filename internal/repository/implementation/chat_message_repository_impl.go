package implementation

import (
	"context"
	"errors"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/mapper"
	"chat-journal-be/internal/model"
	"chat-journal-be/internal/repository/contract"
	"chat-journal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	modelMessage := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(modelMessage).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(modelMessage)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	var modelMessage model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelMessage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.MessageToEntity(&modelMessage), nil
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var modelMessages []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelMessages).Error; err != nil {
		return nil, err
	}

	return r.mapper.MessagesToEntities(modelMessages), nil
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatMessageRepositoryImpl) CountForOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Joins("JOIN chats ON chats.id = chat_messages.chat_id").
		Where("chats.user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
