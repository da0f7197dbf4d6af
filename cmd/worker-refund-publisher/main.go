package main

import (
	"context"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/config"
	"github.com/coworkhq/booking-services/bookinggateway/internal/consumers"
	"github.com/coworkhq/booking-services/bookinggateway/internal/publishers"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mq"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishInterval = 30 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewBookingRepository,

			service.NewRefundQueueService,

			publishers.NewRefundPublisher,
		),
		fx.Invoke(runRefundPublisher),
	).Run()
}

func runRefundPublisher(publisher publishers.RefundPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{consumers.RefundQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", consumers.RefundQueue))

			go func() {
				ticker := time.NewTicker(publishInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish refunds", zap.Error(err))
						}
					case <-appCtx.Done():
						return
					}
				}
			}()

			logger.Info("refund publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping refund publisher")
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

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
