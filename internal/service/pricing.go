package service

import (
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/shopspring/decimal"
)

// Quote is the priced result of a booking window. Amount is the monetary
// charge rounded to two decimals; Coins is the equivalent coin charge
// (1 coin per currency unit, rounded to the nearest whole coin).
type Quote struct {
	Hours  int64
	Amount decimal.Decimal
}

// Coins returns the coin charge for the quote.
func (q Quote) Coins() int64 {
	return q.Amount.Round(0).IntPart()
}

// AmountMinor returns the charge in minor currency units for the gateway.
func (q Quote) AmountMinor() int64 {
	return q.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type PricingService interface {
	Price(hourlyRate decimal.Decimal, start, end time.Time) (Quote, error)
}

type pricing struct{}

func NewPricingService() PricingService {
	return &pricing{}
}

// Price bills whole hours, rounding partial hours up: a 90-minute window
// bills 2 hours.
func (p *pricing) Price(hourlyRate decimal.Decimal, start, end time.Time) (Quote, error) {
	if !end.After(start) {
		return Quote{}, NewServiceError(constants.ErrCodeInvalidTimeRange, ErrInvalidTimeRange)
	}

	duration := end.Sub(start)
	hours := int64(duration / time.Hour)
	if duration%time.Hour != 0 {
		hours++
	}

	amount := hourlyRate.Mul(decimal.NewFromInt(hours)).Round(2)

	return Quote{Hours: hours, Amount: amount}, nil
}
