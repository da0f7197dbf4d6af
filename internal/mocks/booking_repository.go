package mocks

import (
	"context"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepository) CountOverlapping(ctx context.Context, resourceID int64, start, end time.Time) (int64, error) {
	args := m.Called(ctx, resourceID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BookingRepository) GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]model.Booking, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *BookingRepository) CountByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BookingRepository) FindRefundable(ctx context.Context, limit int) ([]model.Booking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *BookingRepository) MarkRefundQueued(ctx context.Context, bookingID int64, queuedAt time.Time) error {
	args := m.Called(ctx, bookingID, queuedAt)
	return args.Error(0)
}
