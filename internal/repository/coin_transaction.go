package repository

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"gorm.io/gorm"
)

type CoinTransactionRepository interface {
	Create(ctx context.Context, tx *model.CoinTransaction) error
	ListByCustomerID(ctx context.Context, customerID int64, limit int) ([]model.CoinTransaction, error)
}

type CoinTransaction struct {
	db *gorm.DB
}

func NewCoinTransactionRepository(db *gorm.DB) CoinTransactionRepository {
	return &CoinTransaction{db: db}
}

func (c *CoinTransaction) Create(ctx context.Context, tx *model.CoinTransaction) error {
	return GetTx(ctx, c.db).Create(tx).Error
}

func (c *CoinTransaction) ListByCustomerID(ctx context.Context, customerID int64, limit int) ([]model.CoinTransaction, error) {
	var transactions []model.CoinTransaction

	err := GetTx(ctx, c.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
