package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCoins   PaymentMethod = "COINS"
	PaymentMethodGateway PaymentMethod = "GATEWAY"
)

// Booking covers both seat and meeting-room reservations; meeting rooms
// additionally carry participants and amenities. Gateway-paid bookings are
// linked to the external order through OrderID, a single normalized column.
type Booking struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	CustomerID      int64           `gorm:"column:customer_id;index;not null"`
	ResourceID      int64           `gorm:"column:resource_id;index;not null"`
	BookingType     ResourceType    `gorm:"column:booking_type;type:enum('SEAT','MEETING_ROOM');not null"`
	StartTime       time.Time       `gorm:"column:start_time;not null;index:idx_resource_window"`
	EndTime         time.Time       `gorm:"column:end_time;not null"`
	NumParticipants *int            `gorm:"column:num_participants"`
	Amenities       *string         `gorm:"column:amenities;type:text"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null"`
	Status          BookingStatus   `gorm:"column:status;type:enum('PENDING','CONFIRMED','CANCELLED','COMPLETED');not null"`
	PaymentStatus   PaymentStatus   `gorm:"column:payment_status;type:enum('PENDING','COMPLETED','FAILED','REFUNDED');not null"`
	PaymentMethod   PaymentMethod   `gorm:"column:payment_method;type:enum('COINS','GATEWAY');not null"`
	OrderID         *string         `gorm:"column:order_id;type:varchar(64);uniqueIndex"`
	PaymentID       *string         `gorm:"column:payment_id;type:varchar(64)"`
	RefundQueuedAt  *time.Time      `gorm:"column:refund_queued_at"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}
