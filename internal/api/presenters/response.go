package presenters

import (
	"errors"

	"bloodbank/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// Fail writes err with the status its domain kind maps to. Errors of unknown
// kind are reported as 500 without leaking their text.
func Fail(c *fiber.Ctx, message string, err error) error {
	status := StatusFromError(err)
	if status == fiber.StatusInternalServerError {
		return ErrorResponse(c, status, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return ErrorResponse(c, status, message, err)
}

func StatusFromError(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusUnprocessableEntity
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders errors that escape handlers, such as unknown routes,
// in the same envelope as every other response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorResponse(c, fe.Code, fe.Message, nil)
	}
	return Fail(c, domain.MessageFailedProcessRequest, err)
}
