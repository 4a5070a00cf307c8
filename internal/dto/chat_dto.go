package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title          string `json:"title"`
	InitialMessage string `json:"initialMessage" validate:"required"`
}

type AddMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user model"`
	Content string `json:"content" validate:"required"`
}

type UpdateChatTitleRequest struct {
	Title string `json:"title" validate:"required"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chatId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatResponse struct {
	Id        uuid.UUID         `json:"id"`
	UserId    uuid.UUID         `json:"userId"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Messages  []MessageResponse `json:"messages"`
}

// ChatPreviewResponse is the listing shape: first message only plus a count.
type ChatPreviewResponse struct {
	Id           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	FirstMessage *MessageResponse `json:"firstMessage,omitempty"`
	MessageCount int64            `json:"messageCount"`
}

type PaginationResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

type ListChatsResponse struct {
	Chats      []ChatPreviewResponse `json:"chats"`
	Pagination PaginationResponse    `json:"pagination"`
}

type ChatStatsResponse struct {
	TotalChats    int64 `json:"totalChats"`
	TotalMessages int64 `json:"totalMessages"`
}
