package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db  *gorm.DB
	env string
}

func NewHealthController(db *gorm.DB, env string) IHealthController {
	return &healthController{db: db, env: env}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

// Check probes database connectivity; 503 when the pool cannot reach it.
func (c *healthController) Check(ctx *fiber.Ctx) error {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Context())
	}

	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":     false,
			"message":     "Service unavailable",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": c.env,
			"database":    "disconnected",
		})
	}

	return ctx.JSON(fiber.Map{
		"success":     true,
		"message":     "Server is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": c.env,
		"database":    "connected",
	})
}
