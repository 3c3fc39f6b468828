package handlers

import (
	"bloodbank/domain"
	"bloodbank/internal/api/presenters"
	"bloodbank/internal/middleware"
	"bloodbank/pkg/dashboard"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		AdminDashboard(c *fiber.Ctx) error
		DonorDashboard(c *fiber.Ctx) error
		BloodGroups(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *dashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	res, err := h.dashboardService.AdminDashboard(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *dashboardHandler) DonorDashboard(c *fiber.Ctx) error {
	res, err := h.dashboardService.DonorDashboard(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *dashboardHandler) BloodGroups(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, domain.BloodGroups, fiber.StatusOK, domain.MessageSuccessGetBloodGroup)
}
