package service

import "github.com/coworkhq/booking-services/bookinggateway/internal/model"

type PaymentDescriptor struct {
	Method         model.PaymentMethod `json:"method"`
	CoinsUsed      int64               `json:"coins_used,omitempty"`
	CoinsRemaining int64               `json:"coins_remaining,omitempty"`
	OrderID        string              `json:"order_id,omitempty"`
	AmountMinor    int64               `json:"amount_minor,omitempty"`
	Currency       string              `json:"currency,omitempty"`
	KeyID          string              `json:"key_id,omitempty"`
}

type CreateBookingResponse struct {
	Booking *model.Booking    `json:"booking"`
	Payment PaymentDescriptor `json:"payment"`
}

type CoinStatement struct {
	Balance      int64                   `json:"balance"`
	LastReset    string                  `json:"last_reset"`
	MaxCoins     int64                   `json:"max_coins"`
	Transactions []model.CoinTransaction `json:"transactions"`
}

type ListBookingsResponse struct {
	Bookings []model.Booking `json:"bookings"`
	Total    int64           `json:"total"`
}
