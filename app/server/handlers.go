package server

import (
	"encoding/json"
	"time"

	"smartreply/app/service/cache"
	"smartreply/app/service/generation"
	"smartreply/app/service/reply"
	"smartreply/app/util/metrics"

	"github.com/gofiber/fiber/v2"
)

func (s *Service) handleSuggest(c *fiber.Ctx) error {
	metrics.RequestsTotal.WithLabelValues("suggest").Inc()

	// Absent fields keep the configured defaults.
	req := reply.Request{
		Tone:                reply.ToneProfessional,
		NumSuggestions:      s.cfg.Reply.NumSuggestions,
		MaxLength:           s.cfg.Reply.MaxReplyLength,
		IncludeQuickReplies: true,
	}

	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if len(req.Context.Messages) == 0 {
		return badRequest(c, "At least one message is required in the context")
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	resp := s.replySvc.GenerateReplies(c.UserContext(), req)

	for _, suggestion := range resp.Suggestions {
		source := "model"
		if suggestion.IsQuickReply {
			source = "template"
		}
		metrics.SuggestionsTotal.WithLabelValues(source).Inc()
	}
	metrics.ProcessingTime.Observe(resp.ProcessingTimeMs / 1000)

	return c.JSON(resp)
}

func (s *Service) handleQuick(c *fiber.Ctx) error {
	metrics.RequestsTotal.WithLabelValues("quick").Inc()

	var req reply.QuickRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	body, err := s.cacheSvc.GetOrCompute(c.UserContext(), cache.Key(req.LastMessage), func() ([]byte, error) {
		return json.Marshal(s.replySvc.GetQuickReplies(req))
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Send(body)
}

func (s *Service) handleIntents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"intents": reply.AllIntents})
}

func (s *Service) handleTones(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tones": reply.AllTones})
}

func (s *Service) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "smart-reply-service",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "smart-reply-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) handleReady(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":    "ready",
		"service":   "smart-reply-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"models": fiber.Map{
			"reply_model": "loaded",
		},
	}

	if !s.backendSvc.Available() {
		resp["status"] = string(generation.StatusDegraded)
		resp["message"] = "reply model not loaded, using fallback templates"
		resp["models"] = fiber.Map{
			"reply_model": "fallback",
		}
	}

	return c.JSON(resp)
}

func (s *Service) handleLive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "alive",
		"service":   "smart-reply-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": detail})
}
