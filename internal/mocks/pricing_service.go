package mocks

import (
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type PricingService struct {
	mock.Mock
}

func (m *PricingService) Price(hourlyRate decimal.Decimal, start, end time.Time) (service.Quote, error) {
	args := m.Called(hourlyRate, start, end)
	return args.Get(0).(service.Quote), args.Error(1)
}
