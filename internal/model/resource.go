package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ResourceType string

const (
	ResourceTypeSeat        ResourceType = "SEAT"
	ResourceTypeMeetingRoom ResourceType = "MEETING_ROOM"
)

type PricingMode string

const (
	PricingModeCoins   PricingMode = "COINS"
	PricingModeGateway PricingMode = "GATEWAY"
)

type AvailabilityStatus string

const (
	AvailabilityStatusAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityStatusBooked      AvailabilityStatus = "BOOKED"
	AvailabilityStatusMaintenance AvailabilityStatus = "MAINTENANCE"
)

// Resource is a bookable unit (a seat or a meeting room).
// AvailabilityStatus is a display hint kept in sync on confirmation;
// the overlap query on bookings is what actually decides availability.
type Resource struct {
	ID                 int64              `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	BranchID           int64              `gorm:"column:branch_id;index"`
	SeatingTypeID      int64              `gorm:"column:seating_type_id;index"`
	Code               string             `gorm:"column:code;uniqueIndex"`
	Name               string             `gorm:"column:name"`
	ResourceType       ResourceType       `gorm:"column:resource_type;type:enum('SEAT','MEETING_ROOM');not null"`
	HourlyRate         decimal.Decimal    `gorm:"column:hourly_rate;type:decimal(10,2);not null"`
	PricingMode        PricingMode        `gorm:"column:pricing_mode;type:enum('COINS','GATEWAY');not null"`
	AvailabilityStatus AvailabilityStatus `gorm:"column:availability_status;type:enum('AVAILABLE','BOOKED','MAINTENANCE');default:AVAILABLE"`
	CreatedAt          time.Time          `gorm:"column:created_at"`
	UpdatedAt          time.Time          `gorm:"column:updated_at"`
}
