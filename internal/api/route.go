package api

import (
	v1 "github.com/coworkhq/booking-services/bookinggateway/internal/api/v1"
	"github.com/coworkhq/booking-services/bookinggateway/internal/middleware"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, jwtSecret string, customers repository.CustomerRepository) {
	app.Get("/ping", handler.Pong)

	// The gateway authenticates webhooks by signature, not bearer token.
	app.Post("/v1/payments/webhook", handler.Webhook)

	auth := middleware.Auth(jwtSecret)
	profile := middleware.ProfileGate(customers)

	app.Post("/v1/bookings", auth, profile, handler.CreateBooking)
	app.Post("/v1/bookings/:id/cancel", auth, handler.CancelBooking)
	app.Get("/v1/bookings", auth, handler.ListBookings)
	app.Get("/v1/coins", auth, handler.GetCoins)
}
