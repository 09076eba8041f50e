package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldops/atm-visit-service/internal/api/dto"
	"github.com/fieldops/atm-visit-service/internal/service"
)

// StatsHandler exposes aggregate reporting figures to supervisors.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Overview GET /stats.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.service.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		Total:        stats.Total,
		Feeding:      stats.Feeding,
		Maintenance:  stats.Maintenance,
		TodayCount:   stats.TodayCount,
		ActiveAgents: stats.ActiveAgents,
	})
}
