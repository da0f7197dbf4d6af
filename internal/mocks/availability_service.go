package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type AvailabilityService struct {
	mock.Mock
}

func (m *AvailabilityService) IsAvailable(ctx context.Context, resourceID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, resourceID, start, end)
	return args.Bool(0), args.Error(1)
}
