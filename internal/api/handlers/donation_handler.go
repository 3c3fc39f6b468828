package handlers

import (
	"bloodbank/domain"
	"bloodbank/internal/api/presenters"
	"bloodbank/internal/middleware"
	"bloodbank/pkg/donation"

	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		SubmitDonation(c *fiber.Ctx) error
		ListMyDonations(c *fiber.Ctx) error
		ListPendingDonations(c *fiber.Ctx) error
		ApproveDonation(c *fiber.Ctx) error
		RejectDonation(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
	}
)

func NewDonationHandler(donationService donation.DonationService) DonationHandler {
	return &donationHandler{
		donationService: donationService,
	}
}

func (h *donationHandler) SubmitDonation(c *fiber.Ctx) error {
	req := new(domain.SubmitDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donationService.SubmitDonation(c.Context(), middleware.Principal(c), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) ListMyDonations(c *fiber.Ctx) error {
	res, err := h.donationService.ListMyDonations(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetDonations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) ListPendingDonations(c *fiber.Ctx) error {
	res, err := h.donationService.ListPendingDonations(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetDonations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) ApproveDonation(c *fiber.Ctx) error {
	res, err := h.donationService.ApproveDonation(c.Context(), middleware.Principal(c), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedApproveDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveDonation)
}

func (h *donationHandler) RejectDonation(c *fiber.Ctx) error {
	req := new(domain.RejectDonationRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	res, err := h.donationService.RejectDonation(c.Context(), middleware.Principal(c), c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedRejectDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectDonation)
}
