package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	stats, err := h.dashboard.Stats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *DashboardHandler) Videos(c *fiber.Ctx) error {
	userID, err := actor(c)
	if err != nil {
		return respondError(c, err)
	}
	videos, err := h.dashboard.Videos(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, videos, "Channel videos fetched successfully")
}
