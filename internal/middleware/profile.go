package middleware

import (
	"errors"

	v1 "github.com/coworkhq/booking-services/bookinggateway/internal/api/v1"
	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// ProfileGate blocks booking creation until identity and address proof are
// on file, reporting exactly which documents are missing.
func ProfileGate(customers repository.CustomerRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, ok := c.Locals("customerID").(int64)
		if !ok {
			return unauthorized(c)
		}

		customer, err := customers.GetByID(c.UserContext(), customerID)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return unauthorized(c)
			}
			return err
		}

		missing := fiber.Map{}
		if !customer.IdentityVerified {
			missing["identityProof"] = true
		}
		if !customer.AddressVerified {
			missing["addressProof"] = true
		}

		if len(missing) > 0 {
			return c.Status(fiber.StatusForbidden).JSON(v1.Envelope{
				Success: false,
				Message: constants.GetErrorMessage(constants.ErrCodeProfileIncomplete),
				Error:   constants.ErrCodeProfileIncomplete,
				Data:    fiber.Map{"missingFields": missing},
			})
		}

		return c.Next()
	}
}
