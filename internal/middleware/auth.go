package middleware

import (
	"strconv"
	"strings"

	v1 "github.com/coworkhq/booking-services/bookinggateway/internal/api/v1"
	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth resolves the bearer token to a customer id and stores it in the
// request locals. Token issuance lives in the identity service; this
// gateway only validates.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c)
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return unauthorized(c)
		}

		subject, err := token.Claims.GetSubject()
		if err != nil {
			return unauthorized(c)
		}

		customerID, err := strconv.ParseInt(subject, 10, 64)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals("customerID", customerID)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(v1.Envelope{
		Success: false,
		Message: constants.GetErrorMessage(constants.ErrCodeUnauthorized),
		Error:   constants.ErrCodeUnauthorized,
	})
}
