package bootstrap

import (
	"chat-journal-be/internal/config"
	"chat-journal-be/internal/controller"
	"chat-journal-be/internal/pkg/logger"
	"chat-journal-be/internal/pkg/serverutils"
	"chat-journal-be/internal/pkg/token"
	"chat-journal-be/internal/repository/unitofwork"
	"chat-journal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Container wires every dependency once at process start; nothing in the
// request path reaches for globals.
type Container struct {
	AuthController   controller.IAuthController
	ChatController   controller.IChatController
	HealthController controller.IHealthController

	AuthRequired fiber.Handler
	Logger       logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	tokenService := token.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Services
	authService := service.NewAuthService(uowFactory, tokenService)
	chatService := service.NewChatService(uowFactory)

	// Controllers
	authController := controller.NewAuthController(authService)
	chatController := controller.NewChatController(chatService)
	healthController := controller.NewHealthController(db, cfg.App.Environment)

	return &Container{
		AuthController:   authController,
		ChatController:   chatController,
		HealthController: healthController,
		AuthRequired:     serverutils.NewJwtMiddleware(tokenService),
		Logger:           sysLogger,
	}
}
