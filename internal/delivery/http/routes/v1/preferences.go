package v1

import (
	"gigmatch/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterPreferences(r fiber.Router, preferenceHandler *handler.PreferenceHandler) {
	if r == nil {
		return
	}
	if preferenceHandler == nil {
		return
	}

	preferenceHandler.RegisterRoutes(r)
}
