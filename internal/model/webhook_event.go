package model

import "time"

const (
	WebhookEventStateProcessed  = "PROCESSED"
	WebhookEventStateSkipped    = "SKIPPED"
	WebhookEventStateUnresolved = "UNRESOLVED"
)

// WebhookEvent records every gateway callback we receive. UNRESOLVED rows
// are the operator queue for payments that could not be matched to a booking.
type WebhookEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	EventType string    `gorm:"column:event_type;not null"`
	OrderID   string    `gorm:"column:order_id;index"`
	PaymentID string    `gorm:"column:payment_id"`
	State     string    `gorm:"column:state;type:enum('PROCESSED','SKIPPED','UNRESOLVED');not null"`
	Payload   string    `gorm:"column:payload;type:text"`
	LastError *string   `gorm:"column:last_error;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}
