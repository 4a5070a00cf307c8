package service

import (
	"context"
	"fmt"
	"time"

	"chat-journal-be/internal/dto"
	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/pkg/apperr"
	"chat-journal-be/internal/repository/specification"
	"chat-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	AddMessage(ctx context.Context, userID, chatID uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.ListChatsResponse, error)
	GetById(ctx context.Context, userID, chatID uuid.UUID) (*dto.ChatResponse, error)
	UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) (*dto.ChatResponse, error)
	Delete(ctx context.Context, userID, chatID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*dto.ChatStatsResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatService(uowFactory unitofwork.RepositoryFactory) IChatService {
	return &chatService{
		uowFactory: uowFactory,
	}
}

func (s *chatService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("New Chat - %s", time.Now().Format("Jan 2, 2006"))
	}

	chat := &entity.Chat{
		Id:     uuid.New(),
		UserId: userID,
		Title:  title,
	}
	seed := &entity.ChatMessage{
		Id:      uuid.New(),
		ChatId:  chat.Id,
		Role:    entity.MessageRoleUser,
		Content: req.InitialMessage,
	}

	// Chat and seed message commit together; a chat row without at least
	// one message must never be observable.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.Internal("failed to start transaction", err)
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, apperr.Internal("failed to create chat", err)
	}
	if err := uow.ChatMessageRepository().Create(ctx, seed); err != nil {
		return nil, apperr.Internal("failed to create initial message", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.Internal("failed to commit chat creation", err)
	}

	res := toChatResponse(chat, []*entity.ChatMessage{seed})
	return &res, nil
}

func (s *chatService) AddMessage(ctx context.Context, userID, chatID uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error) {
	if !entity.ValidRole(req.Role) {
		return nil, apperr.Validation(`Role must be either "user" or "model"`)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userID, chatID)
	if err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		Id:      uuid.New(),
		ChatId:  chat.Id,
		Role:    entity.MessageRole(req.Role),
		Content: req.Content,
	}

	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, apperr.Internal("failed to create message", err)
	}

	// Listing orders by recency of activity, so an append bumps the chat.
	if err := uow.ChatRepository().Touch(ctx, chat.Id); err != nil {
		return nil, apperr.Internal("failed to touch chat", err)
	}

	res := toMessageResponse(message)
	return &res, nil
}

func (s *chatService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.ListChatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userID},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, apperr.Internal("failed to list chats", err)
	}

	previews := make([]dto.ChatPreviewResponse, 0, len(chats))
	for _, chat := range chats {
		first, err := uow.ChatMessageRepository().FindOne(ctx,
			specification.ByChatID{ChatID: chat.Id},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		if err != nil {
			return nil, apperr.Internal("failed to load chat preview", err)
		}

		count, err := uow.ChatMessageRepository().Count(ctx,
			specification.ByChatID{ChatID: chat.Id},
		)
		if err != nil {
			return nil, apperr.Internal("failed to count chat messages", err)
		}

		preview := dto.ChatPreviewResponse{
			Id:           chat.Id,
			Title:        chat.Title,
			CreatedAt:    chat.CreatedAt,
			UpdatedAt:    chat.UpdatedAt,
			MessageCount: count,
		}
		if first != nil {
			m := toMessageResponse(first)
			preview.FirstMessage = &m
		}
		previews = append(previews, preview)
	}

	return &dto.ListChatsResponse{
		Chats: previews,
		Pagination: dto.PaginationResponse{
			Limit:  limit,
			Offset: offset,
			Count:  len(previews),
		},
	}, nil
}

func (s *chatService) GetById(ctx context.Context, userID, chatID uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userID, chatID)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chat.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperr.Internal("failed to load messages", err)
	}

	res := toChatResponse(chat, messages)
	return &res, nil
}

func (s *chatService) UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) (*dto.ChatResponse, error) {
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userID, chatID)
	if err != nil {
		return nil, err
	}

	chat.Title = title
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, apperr.Internal("failed to update chat title", err)
	}

	res := toChatResponse(chat, nil)
	return &res, nil
}

func (s *chatService) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findOwnedChat(ctx, uow, userID, chatID)
	if err != nil {
		return err
	}

	// Messages go with the chat via the schema-level cascade.
	if err := uow.ChatRepository().Delete(ctx, chat.Id); err != nil {
		return apperr.Internal("failed to delete chat", err)
	}
	return nil
}

func (s *chatService) Stats(ctx context.Context, userID uuid.UUID) (*dto.ChatStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalChats, err := uow.ChatRepository().Count(ctx, specification.OwnedBy{UserID: userID})
	if err != nil {
		return nil, apperr.Internal("failed to count chats", err)
	}

	totalMessages, err := uow.ChatMessageRepository().CountForOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to count messages", err)
	}

	return &dto.ChatStatsResponse{
		TotalChats:    totalChats,
		TotalMessages: totalMessages,
	}, nil
}

// findOwnedChat resolves a chat only when the requester owns it. "Not yours"
// and "does not exist" are deliberately the same answer.
func (s *chatService) findOwnedChat(ctx context.Context, uow unitofwork.UnitOfWork, userID, chatID uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: chatID},
		specification.OwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, apperr.Internal("failed to look up chat", err)
	}
	if chat == nil {
		return nil, apperr.NotFound("Chat not found or unauthorized")
	}
	return chat, nil
}

func toChatResponse(chat *entity.Chat, messages []*entity.ChatMessage) dto.ChatResponse {
	res := dto.ChatResponse{
		Id:        chat.Id,
		UserId:    chat.UserId,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, toMessageResponse(m))
	}
	return res
}

func toMessageResponse(m *entity.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{
		Id:        m.Id,
		ChatId:    m.ChatId,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
