package handlers

import (
	"bloodbank/domain"
	"bloodbank/internal/api/presenters"
	"bloodbank/internal/middleware"
	"bloodbank/pkg/bloodrequest"

	"github.com/gofiber/fiber/v2"
)

type (
	BloodRequestHandler interface {
		CreateRequest(c *fiber.Ctx) error
		ListRequests(c *fiber.Ctx) error
		GetRequest(c *fiber.Ctx) error
		UpdateRequestStatus(c *fiber.Ctx) error
		DeleteRequest(c *fiber.Ctx) error
	}

	bloodRequestHandler struct {
		bloodRequestService bloodrequest.BloodRequestService
	}
)

func NewBloodRequestHandler(bloodRequestService bloodrequest.BloodRequestService) BloodRequestHandler {
	return &bloodRequestHandler{
		bloodRequestService: bloodRequestService,
	}
}

func (h *bloodRequestHandler) CreateRequest(c *fiber.Ctx) error {
	req := new(domain.CreateBloodRequestRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.bloodRequestService.CreateRequest(c.Context(), middleware.Principal(c), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateBloodRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateBloodRequest)
}

func (h *bloodRequestHandler) ListRequests(c *fiber.Ctx) error {
	res, err := h.bloodRequestService.ListRequests(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetBloodRequests, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBloodRequests)
}

func (h *bloodRequestHandler) GetRequest(c *fiber.Ctx) error {
	res, err := h.bloodRequestService.GetRequest(c.Context(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetBloodRequests, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBloodRequests)
}

func (h *bloodRequestHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateBloodRequestStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.bloodRequestService.UpdateRequestStatus(c.Context(), middleware.Principal(c), c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateBloodRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateBloodRequest)
}

func (h *bloodRequestHandler) DeleteRequest(c *fiber.Ctx) error {
	if err := h.bloodRequestService.DeleteRequest(c.Context(), middleware.Principal(c), c.Params("id")); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteBloodRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBloodRequest)
}
