package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (m *LedgerService) Debit(ctx context.Context, cmd service.DebitCoinsCommand) (*model.CoinTransaction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoinTransaction), args.Error(1)
}

func (m *LedgerService) Credit(ctx context.Context, cmd service.CreditCoinsCommand) (*model.CoinTransaction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoinTransaction), args.Error(1)
}

func (m *LedgerService) ResetIfDue(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *LedgerService) Statement(ctx context.Context, customerID int64) (*service.CoinStatement, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CoinStatement), args.Error(1)
}
