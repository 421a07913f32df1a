package app

import (
	"fmt"
	"log"
	"strings"

	"jobport/internal/config"
	"jobport/internal/delivery/http/middleware"
	"jobport/internal/delivery/http/routes"
	v1 "jobport/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap builds the container, starts the websocket hub and wires every
// route onto a fresh fiber app. The returned cleanup closes the container.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	go container.Hub.Run()

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(v1.Deps{
		Config: container.Config,
		DB:     container.DB,
		Cache:  container.Cache,
		Store:  container.Store,
		Hub:    container.Hub,
		Logger: logger,
	})
	registry.Register(f)

	return &App{Fiber: f}, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
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
