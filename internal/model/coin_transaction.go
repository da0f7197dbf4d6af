package model

import "time"

const (
	CoinTxTypeDebit  = "DEBIT"
	CoinTxTypeCredit = "CREDIT"
	CoinTxTypeReset  = "RESET"
)

// CoinTransaction is the append-only audit trail of every balance change.
// Rows are created once and never updated.
type CoinTransaction struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	CustomerID      int64     `gorm:"column:customer_id;index;not null;<-:create"`
	Amount          int64     `gorm:"column:amount;not null;<-:create"`
	TransactionType string    `gorm:"column:transaction_type;type:enum('DEBIT','CREDIT','RESET');not null;<-:create"`
	BalanceAfter    int64     `gorm:"column:balance_after;not null;<-:create"`
	BookingID       *int64    `gorm:"column:booking_id;<-:create"`
	Description     string    `gorm:"column:description;<-:create"`
	CreatedAt       time.Time `gorm:"column:created_at;<-:create"`
}
