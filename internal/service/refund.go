package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/mq"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
	"go.uber.org/zap"
)

// RefundService executes queued gateway refunds for bookings that were
// cancelled after their payment was captured.
type RefundService interface {
	Refund(ctx context.Context, cmd ProcessRefundCommand) error
}

type refund struct {
	bookingRepo repository.BookingRepository
	gateway     razorpay.Gateway
	logger      *zap.Logger
}

func NewRefundService(bookingRepo repository.BookingRepository, gateway razorpay.Gateway,
	logger *zap.Logger) RefundService {
	return &refund{bookingRepo: bookingRepo, gateway: gateway, logger: logger}
}

func (r *refund) Refund(ctx context.Context, cmd ProcessRefundCommand) error {
	r.logger.Info("Processing refund",
		zap.Int64("bookingID", cmd.BookingID),
		zap.String("paymentID", cmd.PaymentID),
		zap.Int64("amountMinor", cmd.AmountMinor))

	bk, err := r.getRefundableBooking(ctx, cmd.BookingID)
	if err != nil {
		r.logger.Debug("Booking not refundable",
			zap.Int64("bookingID", cmd.BookingID),
			zap.Error(err))

		if errors.Is(err, ErrDatabase) {
			return mq.Temporary(err)
		}

		return nil
	}

	request := razorpay.RefundRequest{
		Amount:  cmd.AmountMinor,
		Receipt: fmt.Sprintf("refund-%d", cmd.BookingID),
	}

	_, err = r.gateway.RefundPayment(ctx, cmd.PaymentID, request)
	if err == nil {
		if err := r.markRefunded(ctx, bk); err != nil {
			r.logger.Error("Gateway refunded but database update failed",
				zap.Int64("bookingID", cmd.BookingID),
				zap.Error(err))
			return mq.Temporary(err)
		}

		r.logger.Info("Refund completed successfully",
			zap.Int64("bookingID", cmd.BookingID))
		return nil
	}

	if errors.Is(err, razorpay.ErrNotFound) || errors.Is(err, razorpay.ErrBadRequest) {
		r.logger.Error("Permanent refund failure - manual intervention required",
			zap.Int64("bookingID", cmd.BookingID),
			zap.String("paymentID", cmd.PaymentID),
			zap.Error(err))
		return nil
	}

	r.logger.Warn("Temporary refund failure, will retry",
		zap.Int64("bookingID", cmd.BookingID),
		zap.Error(err))

	return mq.Temporary(err)
}

func (r *refund) getRefundableBooking(ctx context.Context, bookingID int64) (*model.Booking, error) {
	bk, err := r.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, ErrDatabase
	}

	if bk.Status != model.BookingStatusCancelled {
		return nil, ErrRefundNotPending
	}

	switch bk.PaymentStatus {
	case model.PaymentStatusCompleted:
		return bk, nil

	case model.PaymentStatusRefunded:
		r.logger.Info("Refund already processed",
			zap.Int64("bookingID", bookingID))
		return nil, ErrRefundNotPending

	default:
		return nil, ErrRefundNotPending
	}
}

func (r *refund) markRefunded(ctx context.Context, bk *model.Booking) error {
	bk.PaymentStatus = model.PaymentStatusRefunded
	bk.UpdatedAt = time.Now()

	return r.bookingRepo.Update(ctx, bk)
}
