package controller

import (
	"strings"

	"chat-journal-be/internal/dto"
	"chat-journal-be/internal/pkg/apperr"
	"chat-journal-be/internal/pkg/serverutils"
	"chat-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultChatListLimit = 50
	maxChatListLimit     = 100
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateTitle(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	h := r.Group("/chats")
	h.Use(authRequired)
	h.Post("", c.Create)
	h.Get("", c.List)
	// Registered ahead of :id so "stats" never resolves as a chat id.
	h.Get("/stats", c.Stats)
	h.Get("/:id", c.Show)
	h.Patch("/:id", c.UpdateTitle)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/messages", c.AddMessage)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.InitialMessage = strings.TrimSpace(req.InitialMessage)
	if req.InitialMessage == "" {
		return apperr.Validation("Initial message is required")
	}

	res, err := c.service.Create(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.CreatedResponse("Chat created successfully", res))
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", defaultChatListLimit)
	if limit <= 0 || limit > maxChatListLimit {
		limit = defaultChatListLimit
	}
	offset := ctx.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	res, err := c.service.List(ctx.Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("User chats", res))
}

func (c *chatController) Stats(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Stats(ctx.Context(), userID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat statistics", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.Context(), userID, chatID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat detail", res))
}

func (c *chatController) UpdateTitle(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateChatTitleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperr.Validation("Title is required")
	}

	res, err := c.service.UpdateTitle(ctx.Context(), userID, chatID, req.Title)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat title updated successfully", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), userID, chatID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chat deleted successfully", nil))
}

func (c *chatController) AddMessage(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	chatID, err := chatIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AddMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddMessage(ctx.Context(), userID, chatID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.CreatedResponse("Message added successfully", res))
}

func chatIDParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	chatID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.Validation("Invalid chat ID")
	}
	return chatID, nil
}
