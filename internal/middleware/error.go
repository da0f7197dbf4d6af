package middleware

import (
	"errors"

	v1 "github.com/coworkhq/booking-services/bookinggateway/internal/api/v1"
	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps the service error taxonomy onto HTTP statuses and the
// response envelope. Unexpected errors are logged with context and surface
// as a generic 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(v1.Envelope{
				Success: false,
				Message: fiberErr.Message,
				Error:   constants.ErrCodeInternalError,
			})
		}

		logger.Error("Unhandled error reached the request boundary",
			zap.Error(err),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()))

		return c.Status(fiber.StatusInternalServerError).JSON(v1.Envelope{
			Success: false,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
			Error:   constants.ErrCodeInternalError,
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	code := err.Code

	status := constants.GetHTTPStatus(code)
	if status == 500 && code != constants.ErrCodeInternalError {
		code = constants.ErrCodeInternalError
	}

	envelope := v1.Envelope{
		Success: false,
		Message: constants.GetErrorMessage(code),
		Error:   code,
	}

	// Balance shortfalls carry structured data so the client can prompt
	// a top-up with exact numbers.
	var balanceErr service.InsufficientBalanceError
	if errors.As(err.Cause, &balanceErr) {
		envelope.Data = fiber.Map{
			"available": balanceErr.Available,
			"required":  balanceErr.Required,
			"needed":    balanceErr.Shortfall,
		}
	}

	return c.Status(status).JSON(envelope)
}
