package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type CoinTransactionRepository struct {
	mock.Mock
}

func (m *CoinTransactionRepository) Create(ctx context.Context, tx *model.CoinTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *CoinTransactionRepository) ListByCustomerID(ctx context.Context, customerID int64, limit int) ([]model.CoinTransaction, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CoinTransaction), args.Error(1)
}
