package serverutils

import (
	"errors"

	"chat-journal-be/internal/pkg/apperr"
	"chat-journal-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the single place errors become HTTP responses.
// Controllers return typed errors and never format status codes themselves.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperr.As(err); ok {
			status := appErr.Status()
			if status >= fiber.StatusInternalServerError {
				log.Error("http", "request failed", map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
					"error":  err.Error(),
				})
			}
			return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		// Anything untyped is an internal fault; log the detail, hide it
		// from the client.
		log.Error("http", "unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(500, "Internal server error"))
	}
}
