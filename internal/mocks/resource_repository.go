package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type ResourceRepository struct {
	mock.Mock
}

func (m *ResourceRepository) GetByID(ctx context.Context, id int64) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceRepository) GetByCode(ctx context.Context, code string) (*model.Resource, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceRepository) UpdateAvailability(ctx context.Context, id int64, status model.AvailabilityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
