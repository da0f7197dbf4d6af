package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"go.uber.org/zap"
)

// ReconcileOutcome describes what a webhook-driven transition actually did,
// so the reconciler can record it and duplicates stay observable no-ops.
type ReconcileOutcome string

const (
	OutcomeConfirmed        ReconcileOutcome = "CONFIRMED"
	OutcomeAlreadyConfirmed ReconcileOutcome = "ALREADY_CONFIRMED"
	OutcomeCancelled        ReconcileOutcome = "CANCELLED"
	OutcomeAlreadyCancelled ReconcileOutcome = "ALREADY_CANCELLED"
	OutcomeRefundDue        ReconcileOutcome = "REFUND_DUE"
	OutcomeNoop             ReconcileOutcome = "NOOP"
)

type BookingService interface {
	CreateConfirmedTx(ctx context.Context, booking *model.Booking, coins int64) (*model.CoinTransaction, error)
	CreatePendingWithOrder(ctx context.Context, booking *model.Booking) error
	ConfirmByOrderID(ctx context.Context, orderID, paymentID string) (ReconcileOutcome, error)
	CancelByOrderID(ctx context.Context, orderID, paymentID string) (ReconcileOutcome, error)
	Cancel(ctx context.Context, cmd CancelBookingCommand) (*model.Booking, error)
	ListByCustomer(ctx context.Context, query ListBookingsQuery) (*ListBookingsResponse, error)
}

type booking struct {
	bookingRepo  repository.BookingRepository
	resourceRepo repository.ResourceRepository
	ledger       LedgerService
	txManager    repository.TxManager
	logger       *zap.Logger
}

func NewBookingService(bookingRepo repository.BookingRepository, resourceRepo repository.ResourceRepository,
	ledger LedgerService, txManager repository.TxManager, logger *zap.Logger) BookingService {
	return &booking{bookingRepo: bookingRepo, resourceRepo: resourceRepo, ledger: ledger,
		txManager: txManager, logger: logger}
}

// CreateConfirmedTx is the coin path: booking insert, coin debit, and the
// resource status update commit or roll back together. The resource row is
// locked before the overlap re-check so two concurrent requests for the
// same slot serialize instead of both reading a zero count.
func (b *booking) CreateConfirmedTx(ctx context.Context, bk *model.Booking, coins int64) (*model.CoinTransaction, error) {
	var coinTx *model.CoinTransaction

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := b.checkSlotLocked(ctx, bk); err != nil {
			return err
		}

		if err := b.bookingRepo.Create(ctx, bk); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		debitCmd := DebitCoinsCommand{
			CustomerID:  bk.CustomerID,
			Amount:      coins,
			BookingID:   &bk.ID,
			Description: fmt.Sprintf("booking #%d", bk.ID),
		}

		debited, err := b.ledger.Debit(ctx, debitCmd)
		if err != nil {
			return err
		}
		coinTx = debited

		if err := b.resourceRepo.UpdateAvailability(ctx, bk.ResourceID, model.AvailabilityStatusBooked); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		return nil
	})

	if err != nil {
		b.logger.Error("Booking transaction failed",
			zap.Int64("customerID", bk.CustomerID),
			zap.Int64("resourceID", bk.ResourceID),
			zap.Error(err))
		return nil, err
	}

	return coinTx, nil
}

// CreatePendingWithOrder is the order path: the gateway order already
// exists, the booking row is written PENDING carrying the order id. The
// slot is re-checked under the resource lock, same as the coin path.
func (b *booking) CreatePendingWithOrder(ctx context.Context, bk *model.Booking) error {
	return b.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := b.checkSlotLocked(ctx, bk); err != nil {
			return err
		}

		if err := b.bookingRepo.Create(ctx, bk); err != nil {
			if errors.Is(err, repository.ErrBookingDuplicateOrder) {
				b.logger.Warn("Duplicate order id on booking insert",
					zap.Stringp("orderID", bk.OrderID))
			}
			return NewServiceError(ErrCodeDatabase, err)
		}

		return nil
	})
}

// checkSlotLocked takes a FOR UPDATE lock on the resource row, then re-runs
// the overlap count. Must run inside a transaction.
func (b *booking) checkSlotLocked(ctx context.Context, bk *model.Booking) error {
	if _, err := b.resourceRepo.GetByIDForUpdate(ctx, bk.ResourceID); err != nil {
		return NewServiceError(ErrCodeDatabase, err)
	}

	overlapping, err := b.bookingRepo.CountOverlapping(ctx, bk.ResourceID, bk.StartTime, bk.EndTime)
	if err != nil {
		return NewServiceError(ErrCodeDatabase, err)
	}

	if overlapping > 0 {
		b.logger.Warn("Slot taken during booking transaction",
			zap.Int64("resourceID", bk.ResourceID),
			zap.Time("start", bk.StartTime))
		return NewServiceError(constants.ErrCodeSlotConflict, errors.New("slot already booked"))
	}

	return nil
}

func (b *booking) ConfirmByOrderID(ctx context.Context, orderID, paymentID string) (ReconcileOutcome, error) {
	outcome := OutcomeNoop

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		bk, err := b.bookingRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return ErrOrderNotResolved
			}
			return NewServiceError(ErrCodeDatabase, err)
		}

		switch bk.Status {
		case model.BookingStatusConfirmed, model.BookingStatusCompleted:
			// Duplicate capture delivery.
			outcome = OutcomeAlreadyConfirmed
			return nil

		case model.BookingStatusCancelled:
			// Capture arrived after the booking was cancelled. The money
			// was taken; flag the payment as captured so the refund
			// publisher picks the row up. The booking stays CANCELLED.
			bk.PaymentStatus = model.PaymentStatusCompleted
			bk.PaymentID = &paymentID
			bk.UpdatedAt = time.Now()
			if err := b.bookingRepo.Update(ctx, bk); err != nil {
				return NewServiceError(ErrCodeDatabase, err)
			}
			outcome = OutcomeRefundDue
			return nil

		default:
			bk.Status = model.BookingStatusConfirmed
			bk.PaymentStatus = model.PaymentStatusCompleted
			bk.PaymentID = &paymentID
			bk.UpdatedAt = time.Now()
			if err := b.bookingRepo.Update(ctx, bk); err != nil {
				return NewServiceError(ErrCodeDatabase, err)
			}

			if err := b.resourceRepo.UpdateAvailability(ctx, bk.ResourceID, model.AvailabilityStatusBooked); err != nil {
				return NewServiceError(ErrCodeDatabase, err)
			}

			outcome = OutcomeConfirmed
			return nil
		}
	})

	return outcome, err
}

func (b *booking) CancelByOrderID(ctx context.Context, orderID, paymentID string) (ReconcileOutcome, error) {
	outcome := OutcomeNoop

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		bk, err := b.bookingRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return ErrOrderNotResolved
			}
			return NewServiceError(ErrCodeDatabase, err)
		}

		switch bk.Status {
		case model.BookingStatusConfirmed, model.BookingStatusCompleted:
			// A failed event never reverts a confirmed booking.
			b.logger.Warn("payment.failed received for confirmed booking, ignoring",
				zap.Int64("bookingID", bk.ID),
				zap.String("orderID", orderID))
			outcome = OutcomeAlreadyConfirmed
			return nil

		case model.BookingStatusCancelled:
			outcome = OutcomeAlreadyCancelled
			return nil

		default:
			bk.Status = model.BookingStatusCancelled
			bk.PaymentStatus = model.PaymentStatusFailed
			bk.PaymentID = &paymentID
			bk.UpdatedAt = time.Now()
			if err := b.bookingRepo.Update(ctx, bk); err != nil {
				return NewServiceError(ErrCodeDatabase, err)
			}

			if err := b.resourceRepo.UpdateAvailability(ctx, bk.ResourceID, model.AvailabilityStatusAvailable); err != nil {
				return NewServiceError(ErrCodeDatabase, err)
			}

			outcome = OutcomeCancelled
			return nil
		}
	})

	return outcome, err
}

// Cancel handles a customer-initiated cancellation. Coin bookings credit
// the coins back in the same transaction; captured gateway bookings are
// left flagged for the refund pipeline.
func (b *booking) Cancel(ctx context.Context, cmd CancelBookingCommand) (*model.Booking, error) {
	var cancelled *model.Booking

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		bk, err := b.bookingRepo.GetByID(ctx, cmd.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return NewServiceError(constants.ErrCodeBookingNotFound, ErrBookingNotFound)
			}
			return NewServiceError(ErrCodeDatabase, err)
		}

		if bk.CustomerID != cmd.CustomerID {
			return NewServiceError(constants.ErrCodeBookingNotFound, ErrBookingNotFound)
		}

		if bk.Status != model.BookingStatusPending && bk.Status != model.BookingStatusConfirmed {
			return NewServiceError(constants.ErrCodeBookingNotCancel,
				fmt.Errorf("booking is %s", bk.Status))
		}

		refundCoins := bk.PaymentMethod == model.PaymentMethodCoins &&
			bk.PaymentStatus == model.PaymentStatusCompleted

		bk.Status = model.BookingStatusCancelled
		bk.UpdatedAt = time.Now()

		if refundCoins {
			bk.PaymentStatus = model.PaymentStatusRefunded
		}

		if err := b.bookingRepo.Update(ctx, bk); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		if refundCoins {
			creditCmd := CreditCoinsCommand{
				CustomerID:  bk.CustomerID,
				Amount:      bk.TotalAmount.Round(0).IntPart(),
				BookingID:   &bk.ID,
				Description: fmt.Sprintf("cancellation of booking #%d", bk.ID),
			}

			if _, err := b.ledger.Credit(ctx, creditCmd); err != nil {
				return err
			}
		}

		if err := b.resourceRepo.UpdateAvailability(ctx, bk.ResourceID, model.AvailabilityStatusAvailable); err != nil {
			return NewServiceError(ErrCodeDatabase, err)
		}

		cancelled = bk
		return nil
	})

	if err != nil {
		return nil, err
	}

	b.logger.Info("Booking cancelled",
		zap.Int64("bookingID", cancelled.ID),
		zap.Int64("customerID", cancelled.CustomerID))

	return cancelled, nil
}

func (b *booking) ListByCustomer(ctx context.Context, query ListBookingsQuery) (*ListBookingsResponse, error) {
	bookings, err := b.bookingRepo.GetByCustomerID(ctx, query.CustomerID, query.Limit, query.Offset)
	if err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	total, err := b.bookingRepo.CountByCustomerID(ctx, query.CustomerID)
	if err != nil {
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return &ListBookingsResponse{Bookings: bookings, Total: total}, nil
}
