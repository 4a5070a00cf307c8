package mapper

import (
	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Chat mappers

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatsToEntities(models []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ChatToEntity(c))
	}
	return entities
}

// Message mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      entity.MessageRole(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, 0, len(models))
	for _, msg := range models {
		entities = append(entities, m.MessageToEntity(msg))
	}
	return entities
}
