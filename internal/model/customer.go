package model

import "time"

type Customer struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Name             string    `gorm:"column:name"`
	Email            string    `gorm:"column:email;uniqueIndex"`
	IdentityVerified bool      `gorm:"column:identity_verified;default:false"`
	AddressVerified  bool      `gorm:"column:address_verified;default:false"`
	CoinsBalance     int64     `gorm:"column:coins_balance;not null;default:0"`
	CoinsLastReset   time.Time `gorm:"column:coins_last_reset"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}
