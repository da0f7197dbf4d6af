package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/mocks"
	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newBookingServiceMocks() (*mocks.BookingRepository, *mocks.ResourceRepository, *mocks.LedgerService, *mocks.TxManager) {
	return &mocks.BookingRepository{}, &mocks.ResourceRepository{}, &mocks.LedgerService{}, &mocks.TxManager{}
}

func TestBooking_CreateConfirmedTx(t *testing.T) {
	logger := zap.NewNop()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	newBooking := func() *model.Booking {
		return &model.Booking{
			CustomerID:    1,
			ResourceID:    7,
			StartTime:     start,
			EndTime:       start.Add(2 * time.Hour),
			TotalAmount:   decimal.NewFromInt(40),
			Status:        model.BookingStatusConfirmed,
			PaymentStatus: model.PaymentStatusCompleted,
			PaymentMethod: model.PaymentMethodCoins,
		}
	}

	t.Run("Booking, debit and resource update share one transaction", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := newBooking()

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&model.Resource{ID: 7}, nil)
		mockBookings.On("CountOverlapping", mock.Anything, int64(7), bk.StartTime, bk.EndTime).
			Return(int64(0), nil)
		mockBookings.On("Create", mock.Anything, bk).Return(nil)
		mockLedger.On("Debit", mock.Anything, mock.MatchedBy(func(cmd service.DebitCoinsCommand) bool {
			return cmd.CustomerID == 1 && cmd.Amount == 40 && cmd.BookingID != nil
		})).Return(&model.CoinTransaction{BalanceAfter: 60}, nil)
		mockResources.On("UpdateAvailability", mock.Anything, int64(7), model.AvailabilityStatusBooked).
			Return(nil)

		coinTx, err := svc.CreateConfirmedTx(context.Background(), bk, 40)

		assert.NoError(t, err)
		assert.Equal(t, int64(60), coinTx.BalanceAfter)
		mockBookings.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
		mockResources.AssertExpectations(t)
	})

	t.Run("Resource row is locked before the overlap check", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := newBooking()

		var calls []string

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Run(func(mock.Arguments) { calls = append(calls, "lock") }).
			Return(&model.Resource{ID: 7}, nil)
		mockBookings.On("CountOverlapping", mock.Anything, int64(7), bk.StartTime, bk.EndTime).
			Run(func(mock.Arguments) { calls = append(calls, "count") }).
			Return(int64(0), nil)
		mockBookings.On("Create", mock.Anything, bk).Return(nil)
		mockLedger.On("Debit", mock.Anything, mock.Anything).
			Return(&model.CoinTransaction{BalanceAfter: 60}, nil)
		mockResources.On("UpdateAvailability", mock.Anything, int64(7), model.AvailabilityStatusBooked).
			Return(nil)

		_, err := svc.CreateConfirmedTx(context.Background(), bk, 40)

		assert.NoError(t, err)
		assert.Equal(t, []string{"lock", "count"}, calls)
	})

	t.Run("Slot taken inside the transaction", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := newBooking()

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&model.Resource{ID: 7}, nil)
		mockBookings.On("CountOverlapping", mock.Anything, int64(7), bk.StartTime, bk.EndTime).
			Return(int64(1), nil)

		_, err := svc.CreateConfirmedTx(context.Background(), bk, 40)

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSlotConflict, serviceErr.Code)

		mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockLedger.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything)
	})

	t.Run("Debit failure aborts the transaction", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := newBooking()

		debitErr := service.NewServiceError(constants.ErrCodeInsufficientCoins,
			service.InsufficientBalanceError{Available: 10, Required: 40, Shortfall: 30})

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&model.Resource{ID: 7}, nil)
		mockBookings.On("CountOverlapping", mock.Anything, int64(7), bk.StartTime, bk.EndTime).
			Return(int64(0), nil)
		mockBookings.On("Create", mock.Anything, bk).Return(nil)
		mockLedger.On("Debit", mock.Anything, mock.Anything).Return(nil, debitErr)

		_, err := svc.CreateConfirmedTx(context.Background(), bk, 40)

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeInsufficientCoins, serviceErr.Code)

		mockResources.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBooking_CreatePendingWithOrder(t *testing.T) {
	logger := zap.NewNop()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	orderID := "order_abc"

	newBooking := func() *model.Booking {
		return &model.Booking{
			CustomerID:    1,
			ResourceID:    7,
			StartTime:     start,
			EndTime:       start.Add(2 * time.Hour),
			TotalAmount:   decimal.NewFromInt(40),
			Status:        model.BookingStatusPending,
			PaymentStatus: model.PaymentStatusPending,
			PaymentMethod: model.PaymentMethodGateway,
			OrderID:       &orderID,
		}
	}

	t.Run("Pending booking is written after the locked slot check", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := newBooking()

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&model.Resource{ID: 7}, nil)
		mockBookings.On("CountOverlapping", mock.Anything, int64(7), bk.StartTime, bk.EndTime).
			Return(int64(0), nil)
		mockBookings.On("Create", mock.Anything, bk).Return(nil)

		err := svc.CreatePendingWithOrder(context.Background(), bk)

		assert.NoError(t, err)
		mockBookings.AssertExpectations(t)
		mockResources.AssertExpectations(t)
		mockLedger.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything)
	})

	t.Run("Slot taken inside the transaction rejects the order booking", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := newBooking()

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&model.Resource{ID: 7}, nil)
		mockBookings.On("CountOverlapping", mock.Anything, int64(7), bk.StartTime, bk.EndTime).
			Return(int64(1), nil)

		err := svc.CreatePendingWithOrder(context.Background(), bk)

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSlotConflict, serviceErr.Code)

		mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBooking_ConfirmByOrderID(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Pending booking is confirmed", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		orderID := "order_abc"
		bk := &model.Booking{
			ID:            10,
			ResourceID:    7,
			Status:        model.BookingStatusPending,
			PaymentStatus: model.PaymentStatusPending,
			PaymentMethod: model.PaymentMethodGateway,
			OrderID:       &orderID,
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_abc").Return(bk, nil)
		mockBookings.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
			return b.Status == model.BookingStatusConfirmed &&
				b.PaymentStatus == model.PaymentStatusCompleted &&
				b.PaymentID != nil && *b.PaymentID == "pay_1"
		})).Return(nil)
		mockResources.On("UpdateAvailability", mock.Anything, int64(7), model.AvailabilityStatusBooked).
			Return(nil)

		outcome, err := svc.ConfirmByOrderID(context.Background(), "order_abc", "pay_1")

		assert.NoError(t, err)
		assert.Equal(t, service.OutcomeConfirmed, outcome)
		mockBookings.AssertExpectations(t)
		mockResources.AssertExpectations(t)
	})

	t.Run("Duplicate capture is a no-op", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{
			ID:            10,
			Status:        model.BookingStatusConfirmed,
			PaymentStatus: model.PaymentStatusCompleted,
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_abc").Return(bk, nil)

		outcome, err := svc.ConfirmByOrderID(context.Background(), "order_abc", "pay_1")

		assert.NoError(t, err)
		assert.Equal(t, service.OutcomeAlreadyConfirmed, outcome)
		mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Capture after cancellation flags the refund", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{
			ID:            10,
			ResourceID:    7,
			Status:        model.BookingStatusCancelled,
			PaymentStatus: model.PaymentStatusPending,
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_abc").Return(bk, nil)
		mockBookings.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
			return b.Status == model.BookingStatusCancelled &&
				b.PaymentStatus == model.PaymentStatusCompleted
		})).Return(nil)

		outcome, err := svc.ConfirmByOrderID(context.Background(), "order_abc", "pay_1")

		assert.NoError(t, err)
		assert.Equal(t, service.OutcomeRefundDue, outcome)
		mockResources.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown order id", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_missing").
			Return(nil, repository.ErrBookingNotFound)

		_, err := svc.ConfirmByOrderID(context.Background(), "order_missing", "pay_1")

		assert.ErrorIs(t, err, service.ErrOrderNotResolved)
	})
}

func TestBooking_CancelByOrderID(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Pending booking is cancelled", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{
			ID:            10,
			ResourceID:    7,
			Status:        model.BookingStatusPending,
			PaymentStatus: model.PaymentStatusPending,
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_abc").Return(bk, nil)
		mockBookings.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
			return b.Status == model.BookingStatusCancelled &&
				b.PaymentStatus == model.PaymentStatusFailed
		})).Return(nil)
		mockResources.On("UpdateAvailability", mock.Anything, int64(7), model.AvailabilityStatusAvailable).
			Return(nil)

		outcome, err := svc.CancelByOrderID(context.Background(), "order_abc", "pay_1")

		assert.NoError(t, err)
		assert.Equal(t, service.OutcomeCancelled, outcome)
		mockBookings.AssertExpectations(t)
		mockResources.AssertExpectations(t)
	})

	t.Run("Failed event never reverts a confirmed booking", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{
			ID:            10,
			Status:        model.BookingStatusConfirmed,
			PaymentStatus: model.PaymentStatusCompleted,
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_abc").Return(bk, nil)

		outcome, err := svc.CancelByOrderID(context.Background(), "order_abc", "pay_1")

		assert.NoError(t, err)
		assert.Equal(t, service.OutcomeAlreadyConfirmed, outcome)
		assert.Equal(t, model.BookingStatusConfirmed, bk.Status)
		mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate failure is a no-op", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{ID: 10, Status: model.BookingStatusCancelled}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByOrderID", mock.Anything, "order_abc").Return(bk, nil)

		outcome, err := svc.CancelByOrderID(context.Background(), "order_abc", "pay_1")

		assert.NoError(t, err)
		assert.Equal(t, service.OutcomeAlreadyCancelled, outcome)
	})
}

func TestBooking_Cancel(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Coin booking credits the coins back", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{
			ID:            10,
			CustomerID:    1,
			ResourceID:    7,
			Status:        model.BookingStatusConfirmed,
			PaymentStatus: model.PaymentStatusCompleted,
			PaymentMethod: model.PaymentMethodCoins,
			TotalAmount:   decimal.NewFromInt(40),
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByID", mock.Anything, int64(10)).Return(bk, nil)
		mockBookings.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
			return b.Status == model.BookingStatusCancelled &&
				b.PaymentStatus == model.PaymentStatusRefunded
		})).Return(nil)
		mockLedger.On("Credit", mock.Anything, mock.MatchedBy(func(cmd service.CreditCoinsCommand) bool {
			return cmd.CustomerID == 1 && cmd.Amount == 40
		})).Return(&model.CoinTransaction{}, nil)
		mockResources.On("UpdateAvailability", mock.Anything, int64(7), model.AvailabilityStatusAvailable).
			Return(nil)

		cancelled, err := svc.Cancel(context.Background(), service.CancelBookingCommand{CustomerID: 1, BookingID: 10})

		assert.NoError(t, err)
		assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
		mockLedger.AssertExpectations(t)
		mockResources.AssertExpectations(t)
	})

	t.Run("Pending gateway booking cancels without a credit", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{
			ID:            10,
			CustomerID:    1,
			ResourceID:    7,
			Status:        model.BookingStatusPending,
			PaymentStatus: model.PaymentStatusPending,
			PaymentMethod: model.PaymentMethodGateway,
			TotalAmount:   decimal.NewFromInt(40),
		}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByID", mock.Anything, int64(10)).Return(bk, nil)
		mockBookings.On("Update", mock.Anything, mock.Anything).Return(nil)
		mockResources.On("UpdateAvailability", mock.Anything, int64(7), model.AvailabilityStatusAvailable).
			Return(nil)

		cancelled, err := svc.Cancel(context.Background(), service.CancelBookingCommand{CustomerID: 1, BookingID: 10})

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPending, cancelled.PaymentStatus)
		mockLedger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	})

	t.Run("Booking of another customer is invisible", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{ID: 10, CustomerID: 2, Status: model.BookingStatusConfirmed}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByID", mock.Anything, int64(10)).Return(bk, nil)

		_, err := svc.Cancel(context.Background(), service.CancelBookingCommand{CustomerID: 1, BookingID: 10})

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeBookingNotFound, serviceErr.Code)
	})

	t.Run("Completed booking can no longer be cancelled", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bk := &model.Booking{ID: 10, CustomerID: 1, Status: model.BookingStatusCompleted}

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockBookings.On("GetByID", mock.Anything, int64(10)).Return(bk, nil)

		_, err := svc.Cancel(context.Background(), service.CancelBookingCommand{CustomerID: 1, BookingID: 10})

		assert.Error(t, err)

		var serviceErr service.Error
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeBookingNotCancel, serviceErr.Code)
		mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestBooking_ListByCustomer(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Returns page and total", func(t *testing.T) {
		mockBookings, mockResources, mockLedger, mockTx := newBookingServiceMocks()
		svc := service.NewBookingService(mockBookings, mockResources, mockLedger, mockTx, logger)

		bookings := []model.Booking{{ID: 2, CustomerID: 1}, {ID: 1, CustomerID: 1}}

		mockBookings.On("GetByCustomerID", mock.Anything, int64(1), 20, 0).Return(bookings, nil)
		mockBookings.On("CountByCustomerID", mock.Anything, int64(1)).Return(int64(5), nil)

		resp, err := svc.ListByCustomer(context.Background(), service.ListBookingsQuery{CustomerID: 1, Limit: 20, Offset: 0})

		assert.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
		assert.Equal(t, int64(5), resp.Total)
	})
}
