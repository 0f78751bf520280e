package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleRoot reports what the service is and whether it is ready.
// GET /
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":     "SAGE backend is running",
		"agent":       s.agent.Name(),
		"data_loaded": s.ds != nil,
		"status":      "ok",
	})
}

// handleHealth is the liveness probe.
// GET /health
func (s *Server) handleHealth(c *fiber.Ctx) error {
	status := "healthy"
	if s.ds == nil || s.agent == nil {
		status = "unhealthy"
	}
	return c.JSON(fiber.Map{
		"status":      status,
		"agent_name":  s.agent.Name(),
		"data_loaded": s.ds != nil,
		"agent_ready": s.agent != nil,
	})
}

// handleDataOverview returns the aggregate metrics snapshot.
// GET /api/data-overview
func (s *Server) handleDataOverview(c *fiber.Ctx) error {
	overview, err := s.ds.Overview()
	if err != nil {
		s.logger.Error("data overview failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total_records": overview.TotalRecords,
		"columns":       overview.Columns,
		"summary": fiber.Map{
			"total_sales":     overview.TotalSales,
			"total_revenue":   overview.TotalRevenue,
			"total_customers": overview.TotalCustomers,
			"regions":         overview.Regions,
		},
	})
}

type queryRequest struct {
	Query string `json:"query"`
}

// handleQuery runs one natural-language question through the agent.
// POST /api/query
func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "query is required",
		})
	}

	log := s.logger.With(zap.String("query_id", uuid.NewString()))
	log.Info("query received", zap.String("query", query))

	answer, err := s.agent.Answer(c.UserContext(), query)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Query failed: " + err.Error(),
		})
	}

	summary, err := s.ds.Head(10)
	if err != nil {
		log.Warn("data summary unavailable", zap.Error(err))
	}

	log.Info("query answered", zap.Int("answer_chars", len(answer)))
	return c.JSON(fiber.Map{
		"response":     answer,
		"agent":        s.agent.Name(),
		"data_summary": summary,
	})
}
