package serverutils

import (
	"errors"

	"pinpoint-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the domain error taxonomy to HTTP statuses.
// Controllers just `return err`; this is the single place status codes are
// decided.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var validationErr *apperror.ValidationError
		var notFoundErr *apperror.NotFoundError
		var upstreamErr *apperror.UpstreamError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			status = fiber.StatusBadRequest
			message = validationErr.Error()
		case errors.As(err, &notFoundErr):
			status = fiber.StatusNotFound
			message = notFoundErr.Error()
		case errors.As(err, &upstreamErr):
			status = fiber.StatusBadGateway
			message = upstreamErr.Error()
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}
