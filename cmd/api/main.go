package main

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/api"
	v1 "github.com/coworkhq/booking-services/bookinggateway/internal/api/v1"
	"github.com/coworkhq/booking-services/bookinggateway/internal/config"
	"github.com/coworkhq/booking-services/bookinggateway/internal/middleware"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/httpclient"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mysql"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewGateway,
			NewGatewayConfig,
			NewFiberApp,

			repository.NewCustomerRepository,
			repository.NewResourceRepository,
			repository.NewBookingRepository,
			repository.NewCoinTransactionRepository,
			repository.NewWebhookEventRepository,
			repository.NewTransactionManager,

			service.NewPricingService,
			service.NewAvailabilityService,
			service.NewLedgerService,
			service.NewBookingService,
			service.NewBookingWorkflowService,
			service.NewReconcilerService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config,
	customers repository.CustomerRepository, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, cfg.API.JWTSecret, customers)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewGateway(cfg *config.Config) razorpay.Gateway {
	client := httpclient.NewHTTPClient(cfg.Razorpay.Timeout)
	return razorpay.NewGateway(cfg.Razorpay, client)
}

func NewGatewayConfig(cfg *config.Config) razorpay.Config {
	return cfg.Razorpay
}

func NewFiberApp(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})
}
