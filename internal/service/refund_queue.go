package service

import (
	"context"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RefundQueueService feeds the refund publisher: it finds captured payments
// on cancelled bookings and marks them as queued once published.
type RefundQueueService interface {
	FindRefundsToQueue(ctx context.Context, limit int) ([]ProcessRefundCommand, error)
	MarkRefundAsQueued(ctx context.Context, bookingID int64) error
}

type refundQueue struct {
	bookingRepo repository.BookingRepository
	logger      *zap.Logger
}

func NewRefundQueueService(bookingRepo repository.BookingRepository, logger *zap.Logger) RefundQueueService {
	return &refundQueue{bookingRepo: bookingRepo, logger: logger}
}

func (r *refundQueue) FindRefundsToQueue(ctx context.Context, limit int) ([]ProcessRefundCommand, error) {
	r.logger.Debug("Finding refundable bookings", zap.Int("batchSize", limit))

	bookings, err := r.bookingRepo.FindRefundable(ctx, limit)
	if err != nil {
		r.logger.Error("Failed to find refundable bookings", zap.Error(err))
		return nil, err
	}

	if len(bookings) == 0 {
		return nil, nil
	}

	commands := make([]ProcessRefundCommand, 0, len(bookings))
	for _, bk := range bookings {
		cmd := ProcessRefundCommand{
			BookingID:   bk.ID,
			AmountMinor: bk.TotalAmount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		}

		if bk.OrderID != nil {
			cmd.OrderID = *bk.OrderID
		}

		if bk.PaymentID != nil {
			cmd.PaymentID = *bk.PaymentID
		}

		commands = append(commands, cmd)
	}

	return commands, nil
}

func (r *refundQueue) MarkRefundAsQueued(ctx context.Context, bookingID int64) error {
	if err := r.bookingRepo.MarkRefundQueued(ctx, bookingID, time.Now()); err != nil {
		r.logger.Error("Failed to mark booking refund as queued",
			zap.Error(err),
			zap.Int64("bookingID", bookingID))
		return err
	}

	return nil
}
