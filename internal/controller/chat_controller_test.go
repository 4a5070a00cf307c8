package controller

import (
	"context"
	"net/http"
	"testing"

	"chat-journal-be/internal/dto"
	"chat-journal-be/internal/pkg/apperr"
	"chat-journal-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	createFn      func(ctx context.Context, userID uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	addMessageFn  func(ctx context.Context, userID, chatID uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error)
	listFn        func(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.ListChatsResponse, error)
	getByIdFn     func(ctx context.Context, userID, chatID uuid.UUID) (*dto.ChatResponse, error)
	updateTitleFn func(ctx context.Context, userID, chatID uuid.UUID, title string) (*dto.ChatResponse, error)
	deleteFn      func(ctx context.Context, userID, chatID uuid.UUID) error
	statsFn       func(ctx context.Context, userID uuid.UUID) (*dto.ChatStatsResponse, error)

	createCalls     int
	addMessageCalls int
	showCalls       int
	statsCalls      int
}

func (s *stubChatService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	s.createCalls++
	return s.createFn(ctx, userID, req)
}

func (s *stubChatService) AddMessage(ctx context.Context, userID, chatID uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error) {
	s.addMessageCalls++
	return s.addMessageFn(ctx, userID, chatID, req)
}

func (s *stubChatService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.ListChatsResponse, error) {
	return s.listFn(ctx, userID, limit, offset)
}

func (s *stubChatService) GetById(ctx context.Context, userID, chatID uuid.UUID) (*dto.ChatResponse, error) {
	s.showCalls++
	return s.getByIdFn(ctx, userID, chatID)
}

func (s *stubChatService) UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) (*dto.ChatResponse, error) {
	return s.updateTitleFn(ctx, userID, chatID, title)
}

func (s *stubChatService) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	return s.deleteFn(ctx, userID, chatID)
}

func (s *stubChatService) Stats(ctx context.Context, userID uuid.UUID) (*dto.ChatStatsResponse, error) {
	s.statsCalls++
	return s.statsFn(ctx, userID)
}

func newChatTestApp(t *testing.T, stub *stubChatService) (*fiber.App, string) {
	t.Helper()

	app, tokens := newTestApp()
	NewChatController(stub).RegisterRoutes(app, serverutils.NewJwtMiddleware(tokens))

	signed, err := tokens.Issue(uuid.New())
	require.NoError(t, err)
	return app, signed
}

func TestCreateChatReturns201(t *testing.T) {
	stub := &stubChatService{
		createFn: func(_ context.Context, _ uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
			assert.Equal(t, "Hello there", req.InitialMessage)
			return &dto.ChatResponse{Id: uuid.New(), Title: "New Chat - Aug 28, 2026"}, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodPost, "/chats", map[string]string{
		"initialMessage": "Hello there",
	}, bearer)

	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, 1, stub.createCalls)
}

func TestCreateChatBlankInitialMessageIs400(t *testing.T) {
	stub := &stubChatService{
		createFn: func(context.Context, uuid.UUID, *dto.CreateChatRequest) (*dto.ChatResponse, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodPost, "/chats", map[string]string{
		"initialMessage": "   ",
	}, bearer)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Initial message is required", payload["message"])
	assert.Equal(t, 0, stub.createCalls)
}

func TestChatRoutesRequireToken(t *testing.T) {
	stub := &stubChatService{
		listFn: func(context.Context, uuid.UUID, int, int) (*dto.ListChatsResponse, error) {
			t.Fatal("service must not be reached without a token")
			return nil, nil
		},
	}
	app, _ := newChatTestApp(t, stub)

	res, _ := doJSON(t, app, http.MethodGet, "/chats", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestListChatsUsesPaginationDefaults(t *testing.T) {
	stub := &stubChatService{
		listFn: func(_ context.Context, _ uuid.UUID, limit, offset int) (*dto.ListChatsResponse, error) {
			assert.Equal(t, defaultChatListLimit, limit)
			assert.Equal(t, 0, offset)
			return &dto.ListChatsResponse{Chats: []dto.ChatPreviewResponse{}}, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, _ := doJSON(t, app, http.MethodGet, "/chats", nil, bearer)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestListChatsClampsOversizedLimit(t *testing.T) {
	stub := &stubChatService{
		listFn: func(_ context.Context, _ uuid.UUID, limit, offset int) (*dto.ListChatsResponse, error) {
			assert.Equal(t, defaultChatListLimit, limit)
			assert.Equal(t, 20, offset)
			return &dto.ListChatsResponse{Chats: []dto.ChatPreviewResponse{}}, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, _ := doJSON(t, app, http.MethodGet, "/chats?limit=500&offset=20", nil, bearer)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestStatsRouteWinsOverChatIdRoute(t *testing.T) {
	stub := &stubChatService{
		statsFn: func(context.Context, uuid.UUID) (*dto.ChatStatsResponse, error) {
			return &dto.ChatStatsResponse{TotalChats: 2, TotalMessages: 7}, nil
		},
		getByIdFn: func(context.Context, uuid.UUID, uuid.UUID) (*dto.ChatResponse, error) {
			t.Fatal("'stats' must not be parsed as a chat id")
			return nil, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodGet, "/chats/stats", nil, bearer)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, 1, stub.statsCalls)
	assert.Equal(t, 0, stub.showCalls)

	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["totalChats"])
	assert.EqualValues(t, 7, data["totalMessages"])
}

func TestShowChatInvalidIdIs400(t *testing.T) {
	stub := &stubChatService{
		getByIdFn: func(context.Context, uuid.UUID, uuid.UUID) (*dto.ChatResponse, error) {
			t.Fatal("service must not be reached with a malformed id")
			return nil, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodGet, "/chats/not-a-uuid", nil, bearer)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid chat ID", payload["message"])
}

func TestShowChatNotOwnedIs404(t *testing.T) {
	stub := &stubChatService{
		getByIdFn: func(context.Context, uuid.UUID, uuid.UUID) (*dto.ChatResponse, error) {
			return nil, apperr.NotFound("Chat not found or unauthorized")
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodGet, "/chats/"+uuid.NewString(), nil, bearer)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Chat not found or unauthorized", payload["message"])
}

func TestUpdateTitleBlankIs400(t *testing.T) {
	stub := &stubChatService{
		updateTitleFn: func(context.Context, uuid.UUID, uuid.UUID, string) (*dto.ChatResponse, error) {
			t.Fatal("service must not be reached with a blank title")
			return nil, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodPatch, "/chats/"+uuid.NewString(), map[string]string{
		"title": "  ",
	}, bearer)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Title is required", payload["message"])
}

func TestUpdateTitleTrimsInput(t *testing.T) {
	stub := &stubChatService{
		updateTitleFn: func(_ context.Context, _, _ uuid.UUID, title string) (*dto.ChatResponse, error) {
			assert.Equal(t, "Trip notes", title)
			return &dto.ChatResponse{Id: uuid.New(), Title: title}, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, _ := doJSON(t, app, http.MethodPatch, "/chats/"+uuid.NewString(), map[string]string{
		"title": "  Trip notes  ",
	}, bearer)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAddMessageReturns201(t *testing.T) {
	chatID := uuid.New()
	stub := &stubChatService{
		addMessageFn: func(_ context.Context, _, id uuid.UUID, req *dto.AddMessageRequest) (*dto.MessageResponse, error) {
			assert.Equal(t, chatID, id)
			assert.Equal(t, "model", req.Role)
			return &dto.MessageResponse{Id: uuid.New(), Role: req.Role, Content: req.Content}, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, _ := doJSON(t, app, http.MethodPost, "/chats/"+chatID.String()+"/messages", map[string]string{
		"role":    "model",
		"content": "Here is a summary.",
	}, bearer)

	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, 1, stub.addMessageCalls)
}

func TestAddMessageRejectsUnknownRole(t *testing.T) {
	stub := &stubChatService{
		addMessageFn: func(context.Context, uuid.UUID, uuid.UUID, *dto.AddMessageRequest) (*dto.MessageResponse, error) {
			t.Fatal("service must not be reached with an unknown role")
			return nil, nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, _ := doJSON(t, app, http.MethodPost, "/chats/"+uuid.NewString()+"/messages", map[string]string{
		"role":    "system",
		"content": "nope",
	}, bearer)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, 0, stub.addMessageCalls)
}

func TestDeleteChatReturns200(t *testing.T) {
	deleted := false
	stub := &stubChatService{
		deleteFn: func(context.Context, uuid.UUID, uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	app, bearer := newChatTestApp(t, stub)

	res, payload := doJSON(t, app, http.MethodDelete, "/chats/"+uuid.NewString(), nil, bearer)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "Chat deleted successfully", payload["message"])
	assert.True(t, deleted)
}
