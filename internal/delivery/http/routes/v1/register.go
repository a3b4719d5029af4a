package v1

import (
	"gigmatch/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Register mounts the candidate-scoped API under /me behind authMw.
func Register(r fiber.Router, authMw fiber.Handler, match *handler.MatchHandler, pref *handler.PreferenceHandler) {
	if r == nil {
		return
	}

	me := r.Group("/me", authMw)
	RegisterMatches(me, match)
	RegisterPreferences(me, pref)
}
