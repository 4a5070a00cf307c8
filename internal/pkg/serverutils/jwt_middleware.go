package serverutils

import (
	"strings"

	"chat-journal-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Locals key the middleware stores the authenticated
// user id under.
const UserIDKey = "user_id"

// NewJwtMiddleware gates a route group on a valid bearer token. The token
// payload is trusted until expiry; the user row is never re-fetched here.
func NewJwtMiddleware(tokens token.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Access token is required"))
		}

		tokenStr := strings.TrimSpace(authHeader[len("Bearer "):])
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token format"))
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, err.Error()))
		}

		ctx.Locals(UserIDKey, userID.String())
		return ctx.Next()
	}
}
