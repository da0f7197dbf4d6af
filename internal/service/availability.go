package service

import (
	"context"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"go.uber.org/zap"
)

// AvailabilityService answers whether a resource is free for a window.
// It holds no locks; the booking workflow re-runs the check inside the
// booking transaction to close the race between two concurrent requests.
type AvailabilityService interface {
	IsAvailable(ctx context.Context, resourceID int64, start, end time.Time) (bool, error)
}

type availability struct {
	bookingRepo repository.BookingRepository
	logger      *zap.Logger
}

func NewAvailabilityService(bookingRepo repository.BookingRepository, logger *zap.Logger) AvailabilityService {
	return &availability{bookingRepo: bookingRepo, logger: logger}
}

func (a *availability) IsAvailable(ctx context.Context, resourceID int64, start, end time.Time) (bool, error) {
	count, err := a.bookingRepo.CountOverlapping(ctx, resourceID, start, end)
	if err != nil {
		a.logger.Error("Failed to query overlapping bookings",
			zap.Error(err),
			zap.Int64("resourceID", resourceID))
		return false, NewServiceError(ErrCodeDatabase, err)
	}

	return count == 0, nil
}
