package publishers

import (
	"context"
	"encoding/json"

	"github.com/coworkhq/booking-services/bookinggateway/internal/consumers"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mq"
	"go.uber.org/zap"
)

const refundBatchSize = 100

type RefundPublisher interface {
	Publish(ctx context.Context) error
}

type refundPublisher struct {
	service   service.RefundQueueService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewRefundPublisher(service service.RefundQueueService, publisher mq.Publisher, logger *zap.Logger) RefundPublisher {
	return &refundPublisher{service: service, publisher: publisher, logger: logger}
}

func (r *refundPublisher) Publish(ctx context.Context) error {
	refunds, err := r.service.FindRefundsToQueue(ctx, refundBatchSize)
	if err != nil {
		return err
	}

	if len(refunds) == 0 {
		return nil
	}

	r.logger.Info("Publishing refunds", zap.Int("count", len(refunds)))

	successCount := 0
	for _, cmd := range refunds {
		body, _ := json.Marshal(cmd)
		if err := r.publisher.Publish(ctx, "", consumers.RefundQueue, body); err != nil {
			r.logger.Error("Failed to publish refund",
				zap.Error(err),
				zap.Int64("bookingID", cmd.BookingID))
			continue
		}

		if err := r.service.MarkRefundAsQueued(ctx, cmd.BookingID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		r.logger.Info("Successfully published refunds",
			zap.Int("published", successCount),
			zap.Int("total", len(refunds)))
	}

	return nil
}
