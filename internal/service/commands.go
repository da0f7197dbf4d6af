package service

import (
	"time"
)

type CreateBookingCommand struct {
	CustomerID      int64
	ResourceCode    string
	StartTime       time.Time
	EndTime         time.Time
	NumParticipants *int
	Amenities       *string
}

type CancelBookingCommand struct {
	CustomerID int64
	BookingID  int64
}

type DebitCoinsCommand struct {
	CustomerID  int64
	Amount      int64
	BookingID   *int64
	Description string
}

type CreditCoinsCommand struct {
	CustomerID  int64
	Amount      int64
	BookingID   *int64
	Description string
}

type ListBookingsQuery struct {
	CustomerID int64
	Limit      int
	Offset     int
}

type ProcessRefundCommand struct {
	BookingID   int64  `json:"booking_id"`
	OrderID     string `json:"order_id"`
	PaymentID   string `json:"payment_id"`
	AmountMinor int64  `json:"amount_minor"`
}
