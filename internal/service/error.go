package service

import "errors"

const (
	ErrCodeDatabase = "DATABASE_ERROR"
)

var (
	ErrInvalidTimeRange = errors.New("INVALID_TIME_RANGE")
	ErrBookingNotFound  = errors.New("BOOKING_NOT_FOUND")
	ErrCustomerNotFound = errors.New("CUSTOMER_NOT_FOUND")
	ErrResourceNotFound = errors.New("RESOURCE_NOT_FOUND")
	ErrOrderNotResolved = errors.New("ORDER_NOT_RESOLVED")
	ErrRefundNotPending = errors.New("REFUND_NOT_PENDING")
	ErrDatabase         = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// InsufficientBalanceError carries the shortfall details surfaced to the
// client so it can prompt a top-up instead of showing a generic failure.
type InsufficientBalanceError struct {
	Available int64
	Required  int64
	Shortfall int64
}

func (e InsufficientBalanceError) Error() string {
	return "INSUFFICIENT_BALANCE"
}
