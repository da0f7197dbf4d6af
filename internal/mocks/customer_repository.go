package mocks

import (
	"context"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *CustomerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *CustomerRepository) UpdateBalance(ctx context.Context, id int64, balance int64) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

func (m *CustomerRepository) ResetBalance(ctx context.Context, id int64, balance int64, resetAt time.Time) error {
	args := m.Called(ctx, id, balance, resetAt)
	return args.Error(0)
}
