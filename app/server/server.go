// Package server exposes the assistant over HTTP. The chat endpoint
// never returns a 5xx for pipeline trouble: degraded replies come back
// as 200 with diagnostic meta, so frontends always have text to show.
package server

import (
	"context"
	"log/slog"
	"time"

	"airops/app/config"
	"airops/app/service/chat"
	"airops/app/service/mlreport"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
	// Answer duplicates Reply for older frontend builds.
	Answer    string    `json:"answer"`
	Meta      chat.Meta `json:"meta"`
	LatencyMS int64     `json:"latency_ms"`
}

type Server struct {
	cfg     *config.Config
	chats   *chat.Service
	reports *mlreport.Service
	app     *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:     do.MustInvoke[*config.Config](di),
		chats:   do.MustInvoke[*chat.Service](di),
		reports: do.MustInvoke[*mlreport.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           time.Minute,
		WriteTimeout:          2 * time.Minute,
	})
	s.app.Use(recover.New())

	s.app.Get("/", s.handleRoot)
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/chat", s.handleChat)
	s.app.Get("/analytics/tat", s.handleTAT)
	s.app.Get("/analytics/delay-classifier", s.handleDelayClassifier)

	return s, nil
}

func (s *Server) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = s.app.ShutdownWithTimeout(10 * time.Second)
	}()

	slog.Info("http server listening", "addr", s.cfg.Server.Addr)
	if err := s.app.Listen(s.cfg.Server.Addr); err != nil {
		slog.Error("http server stopped", "error", err)
	}
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "airops assistant",
		"status":  "ok",
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":           "ok",
		"store_configured": s.cfg.Store.URL != "" && s.cfg.Store.Key != "",
		"model_configured": s.cfg.OpenAI.Answer.Enabled(),
	})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var request ChatRequest
	if err := c.BodyParser(&request); err != nil {
		// A malformed body still gets a readable reply shape.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be JSON with a \"message\" field",
		})
	}

	start := time.Now()
	reply, meta := s.chats.Process(c.Context(), request.Message)

	return c.JSON(ChatResponse{
		Reply:     reply,
		Answer:    reply,
		Meta:      meta,
		LatencyMS: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleTAT(c *fiber.Ctx) error {
	return c.JSON(s.reports.TAT())
}

func (s *Server) handleDelayClassifier(c *fiber.Ctx) error {
	return c.JSON(s.reports.DelayClassifier())
}
