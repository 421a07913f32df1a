package handler

import (
	"time"

	"jobport/internal/database"
	"jobport/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := fiber.Map{"database": "up"}

	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			status["database"] = "down"
			return response.Error(c, fiber.StatusServiceUnavailable, "service unavailable", status)
		}
	}

	status["time"] = time.Now().UTC()
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
