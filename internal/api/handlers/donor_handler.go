package handlers

import (
	"bloodbank/domain"
	"bloodbank/internal/api/presenters"
	"bloodbank/internal/middleware"
	"bloodbank/pkg/donor"

	"github.com/gofiber/fiber/v2"
)

type (
	DonorHandler interface {
		CreateProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		GetProfile(c *fiber.Ctx) error
		UploadProfilePhoto(c *fiber.Ctx) error
		SearchDonors(c *fiber.Ctx) error
		ListDonors(c *fiber.Ctx) error
	}

	donorHandler struct {
		donorService donor.DonorService
	}
)

func NewDonorHandler(donorService donor.DonorService) DonorHandler {
	return &donorHandler{
		donorService: donorService,
	}
}

func (h *donorHandler) CreateProfile(c *fiber.Ctx) error {
	req := new(domain.CreateDonorProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donorService.CreateProfile(c.Context(), middleware.Principal(c), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateProfile)
}

func (h *donorHandler) UpdateProfile(c *fiber.Ctx) error {
	req := new(domain.UpdateDonorProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donorService.UpdateProfile(c.Context(), middleware.Principal(c), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *donorHandler) GetProfile(c *fiber.Ctx) error {
	res, err := h.donorService.GetProfile(c.Context(), middleware.Principal(c))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *donorHandler) UploadProfilePhoto(c *fiber.Ctx) error {
	photo, err := c.FormFile("photo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, err)
	}

	res, err := h.donorService.UploadProfilePhoto(c.Context(), middleware.Principal(c), domain.UploadProfilePhotoRequest{Photo: photo})
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadPhoto, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadPhoto)
}

func (h *donorHandler) SearchDonors(c *fiber.Ctx) error {
	filter := new(domain.DonorSearchFilter)
	if err := c.QueryParser(filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donorService.SearchDonors(c.Context(), *filter)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSearchDonors, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"donors": res,
		"count":  len(res),
	}, fiber.StatusOK, domain.MessageSuccessSearchDonors)
}

func (h *donorHandler) ListDonors(c *fiber.Ctx) error {
	filter := new(domain.DonorListFilter)
	if err := c.QueryParser(filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.donorService.ListDonors(c.Context(), middleware.Principal(c), *filter)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSearchDonors, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"donors": res,
		"count":  len(res),
	}, fiber.StatusOK, domain.MessageSuccessSearchDonors)
}
