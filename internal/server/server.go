// Package server exposes the SAGE analytics backend over HTTP. The routes
// match the contract the dashboard consumes: a data overview read, a query
// write, and a health probe.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"sage/internal/agent"
	"sage/internal/dataset"
)

// Server wires the dataset and the agent behind the HTTP routes.
type Server struct {
	app    *fiber.App
	ds     *dataset.Store
	agent  agent.Answerer
	logger *zap.Logger
}

// New builds the fiber app with all routes registered.
func New(ds *dataset.Store, answerer agent.Answerer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New())

	s := &Server{app: app, ds: ds, agent: answerer, logger: logger}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/", s.handleRoot)
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Get("/data-overview", s.handleDataOverview)
	api.Post("/query", s.handleQuery)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on addr and blocks.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
