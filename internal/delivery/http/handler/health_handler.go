package handler

import (
	"context"
	"time"

	"gigmatch/internal/database"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// DatabaseHealth is the part of database.DB the health check reads.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Stats() database.PoolStats
}

type HealthHandler struct {
	db DatabaseHealth
}

func NewHealthHandler(db DatabaseHealth) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check pings the database and reports pool usage. A failed ping is a 503.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.db == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"database": "up"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return middleware.NewUnavailableError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"database": "up",
		"pool":     h.db.Stats(),
	})
}
