package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type RefundQueueService struct {
	mock.Mock
}

func (m *RefundQueueService) FindRefundsToQueue(ctx context.Context, limit int) ([]service.ProcessRefundCommand, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ProcessRefundCommand), args.Error(1)
}

func (m *RefundQueueService) MarkRefundAsQueued(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}
