package main

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/config"
	"github.com/coworkhq/booking-services/bookinggateway/internal/consumers"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/httpclient"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mq"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mysql"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
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
			NewMQConnection,
			NewMQConsumer,
			NewGateway,

			repository.NewBookingRepository,

			service.NewRefundService,

			consumers.NewRefundConsumer,
		),
		fx.Invoke(runRefundConsumer),
	).Run()
}

func runRefundConsumer(refundConsumer consumers.RefundConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{consumers.RefundQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", consumers.RefundQueue))

			go func() {
				if err := refundConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("refund consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping refund consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}

func NewGateway(cfg *config.Config) razorpay.Gateway {
	client := httpclient.NewHTTPClient(cfg.Razorpay.Timeout)
	return razorpay.NewGateway(cfg.Razorpay, client)
}
