package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type WebhookEventRepository struct {
	mock.Mock
}

func (m *WebhookEventRepository) Create(ctx context.Context, event *model.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *WebhookEventRepository) ListUnresolved(ctx context.Context, limit int) ([]model.WebhookEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WebhookEvent), args.Error(1)
}
