package app

import (
	"context"
	"fmt"
	"strings"

	"gigmatch/internal/config"
	"gigmatch/internal/delivery/http/handler"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the Fiber app on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires dependencies, starts the expiry scheduler and returns the
// app with a cleanup func that stops both in reverse order.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := c.Scheduler.Start(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		c.Scheduler.Stop()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	registry := routes.NewRegistry(routes.Handlers{
		Health:     handler.NewHealthHandler(c.DB),
		Match:      handler.NewMatchHandler(c.Matching),
		Preference: handler.NewPreferenceHandler(c.Preferences),
	}, middleware.NewAuthMiddleware(c.JWT))
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
