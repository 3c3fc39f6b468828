package handlers

import (
	"bloodbank/domain"
	"bloodbank/internal/api/presenters"
	"bloodbank/internal/middleware"
	"bloodbank/pkg/bloodbank"

	"github.com/gofiber/fiber/v2"
)

type (
	BloodBankHandler interface {
		CreateBank(c *fiber.Ctx) error
		UpdateBank(c *fiber.Ctx) error
		DeleteBank(c *fiber.Ctx) error
		GetBank(c *fiber.Ctx) error
		ListBanks(c *fiber.Ctx) error

		CreateInventory(c *fiber.Ctx) error
		UpdateInventory(c *fiber.Ctx) error
		GetInventory(c *fiber.Ctx) error
		ListInventory(c *fiber.Ctx) error
	}

	bloodBankHandler struct {
		bloodBankService bloodbank.BloodBankService
	}
)

func NewBloodBankHandler(bloodBankService bloodbank.BloodBankService) BloodBankHandler {
	return &bloodBankHandler{
		bloodBankService: bloodBankService,
	}
}

func (h *bloodBankHandler) CreateBank(c *fiber.Ctx) error {
	req := new(domain.BloodBankRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.bloodBankService.CreateBank(c.Context(), middleware.Principal(c), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateBloodBank, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateBloodBank)
}

func (h *bloodBankHandler) UpdateBank(c *fiber.Ctx) error {
	req := new(domain.BloodBankRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.bloodBankService.UpdateBank(c.Context(), middleware.Principal(c), c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateBloodBank, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateBloodBank)
}

func (h *bloodBankHandler) DeleteBank(c *fiber.Ctx) error {
	if err := h.bloodBankService.DeleteBank(c.Context(), middleware.Principal(c), c.Params("id")); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteBloodBank, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBloodBank)
}

func (h *bloodBankHandler) GetBank(c *fiber.Ctx) error {
	res, err := h.bloodBankService.GetBank(c.Context(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetBloodBanks, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBloodBanks)
}

func (h *bloodBankHandler) ListBanks(c *fiber.Ctx) error {
	res, err := h.bloodBankService.ListBanks(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetBloodBanks, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBloodBanks)
}

func (h *bloodBankHandler) CreateInventory(c *fiber.Ctx) error {
	req := new(domain.BloodInventoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.bloodBankService.CreateInventory(c.Context(), middleware.Principal(c), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateInventory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateInventory)
}

func (h *bloodBankHandler) UpdateInventory(c *fiber.Ctx) error {
	req := new(domain.BloodInventoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.bloodBankService.UpdateInventory(c.Context(), middleware.Principal(c), c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateInventory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateInventory)
}

func (h *bloodBankHandler) GetInventory(c *fiber.Ctx) error {
	res, err := h.bloodBankService.GetInventory(c.Context(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetInventory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

func (h *bloodBankHandler) ListInventory(c *fiber.Ctx) error {
	res, err := h.bloodBankService.ListInventory(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetInventory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventory)
}
