package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smartreply/app/config"
	"smartreply/app/service/cache"
	"smartreply/app/service/generation"
	"smartreply/app/service/reply"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
)

const shutdownTimeout = 5 * time.Second

type Service struct {
	cfg        *config.Config
	replySvc   *reply.Service
	backendSvc *generation.Service
	cacheSvc   *cache.Service

	app      *fiber.App
	validate *validator.Validate
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:        do.MustInvoke[*config.Config](di),
		replySvc:   do.MustInvoke[*reply.Service](di),
		backendSvc: do.MustInvoke[*generation.Service](di),
		cacheSvc:   do.MustInvoke[*cache.Service](di),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	app := fiber.New(fiber.Config{
		AppName:               "smart-reply-service",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	if len(s.cfg.Server.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(s.cfg.Server.CORSOrigins, ","),
			AllowCredentials: true,
		}))
	}

	app.Get("/", s.handleRoot)
	app.Get("/health", s.handleHealth)
	app.Get("/health/ready", s.handleReady)
	app.Get("/health/live", s.handleLive)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1/replies")
	api.Post("/suggest", s.handleSuggest)
	api.Post("/quick", s.handleQuick)
	api.Get("/intents", s.handleIntents)
	api.Get("/tones", s.handleTones)

	s.app = app

	return s, nil
}

func (s *Service) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Warn("Server shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	slog.Info("Listening", "addr", addr)

	if err := s.app.Listen(addr); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
