package controller

import (
	"chat-journal-be/internal/dto"
	"chat-journal-be/internal/pkg/apperr"
	"chat-journal-be/internal/pkg/serverutils"
	"chat-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", authRequired, c.Me)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).
		JSON(serverutils.CreatedResponse("User registered successfully", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Me(ctx.Context(), userID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Current user", res))
}

// currentUserID reads the identity the jwt middleware stored on the request.
func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(serverutils.UserIDKey).(string)
	if !ok {
		return uuid.Nil, apperr.Auth("Access token is required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Auth("Access token is required")
	}
	return userID, nil
}
