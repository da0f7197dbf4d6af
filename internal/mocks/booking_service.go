package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type BookingService struct {
	mock.Mock
}

func (m *BookingService) CreateConfirmedTx(ctx context.Context, booking *model.Booking, coins int64) (*model.CoinTransaction, error) {
	args := m.Called(ctx, booking, coins)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoinTransaction), args.Error(1)
}

func (m *BookingService) CreatePendingWithOrder(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingService) ConfirmByOrderID(ctx context.Context, orderID, paymentID string) (service.ReconcileOutcome, error) {
	args := m.Called(ctx, orderID, paymentID)
	return args.Get(0).(service.ReconcileOutcome), args.Error(1)
}

func (m *BookingService) CancelByOrderID(ctx context.Context, orderID, paymentID string) (service.ReconcileOutcome, error) {
	args := m.Called(ctx, orderID, paymentID)
	return args.Get(0).(service.ReconcileOutcome), args.Error(1)
}

func (m *BookingService) Cancel(ctx context.Context, cmd service.CancelBookingCommand) (*model.Booking, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingService) ListByCustomer(ctx context.Context, query service.ListBookingsQuery) (*service.ListBookingsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListBookingsResponse), args.Error(1)
}
