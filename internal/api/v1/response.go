package v1

// Envelope is the response convention shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

type BookingResponse struct {
	ID              int64   `json:"id"`
	ResourceID      int64   `json:"resource_id"`
	BookingType     string  `json:"booking_type"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	NumParticipants *int    `json:"num_participants,omitempty"`
	Amenities       *string `json:"amenities,omitempty"`
	TotalAmount     string  `json:"total_amount"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	PaymentMethod   string  `json:"payment_method"`
	OrderID         *string `json:"order_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type PaymentResponse struct {
	Method         string `json:"method"`
	CoinsUsed      int64  `json:"coins_used,omitempty"`
	CoinsRemaining int64  `json:"coins_remaining,omitempty"`
	OrderID        string `json:"order_id,omitempty"`
	AmountMinor    int64  `json:"amount_minor,omitempty"`
	Currency       string `json:"currency,omitempty"`
	KeyID          string `json:"key_id,omitempty"`
}

type CreateBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Payment PaymentResponse `json:"payment"`
}

type CoinTransactionResponse struct {
	ID              int64  `json:"id"`
	Amount          int64  `json:"amount"`
	TransactionType string `json:"transaction_type"`
	BalanceAfter    int64  `json:"balance_after"`
	BookingID       *int64 `json:"booking_id,omitempty"`
	Description     string `json:"description"`
	CreatedAt       string `json:"created_at"`
}

type CoinStatementResponse struct {
	Balance      int64                     `json:"balance"`
	LastReset    string                    `json:"last_reset"`
	MaxCoins     int64                     `json:"max_coins"`
	Transactions []CoinTransactionResponse `json:"transactions"`
}

type ListBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
}
