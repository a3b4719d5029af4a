package routes

import (
	"gigmatch/internal/delivery/http/middleware"
	v1 "gigmatch/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, auth *middleware.AuthMiddleware, h Handlers) {
	if r == nil || auth == nil {
		return
	}

	v1.Register(r, auth.Middleware(), h.Match, h.Preference)
}
