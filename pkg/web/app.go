package web

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type Server struct {
	logger   *slog.Logger
	handlers *Handlers
}

func NewServer(logger *slog.Logger, list TodoList, source string) *Server {
	return &Server{
		logger:   logger,
		handlers: NewHandlers(logger, list, source),
	}
}

func (s *Server) App() *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("notion-todo")
	})

	t := app.Group("/todo")
	t.Get("/", s.handlers.GetItems)
	t.Post("/refresh", s.handlers.RequestRefresh)

	app.Get("/health", s.handlers.HealthCheck)

	return app
}

func (s *Server) Start(port int) error {
	app := s.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
