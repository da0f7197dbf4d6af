package repository

import (
	"context"
	"errors"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCustomerNotFound = errors.New("CUSTOMER_NOT_FOUND")

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Customer, error)
	UpdateBalance(ctx context.Context, id int64, balance int64) error
	ResetBalance(ctx context.Context, id int64, balance int64, resetAt time.Time) error
}

type Customer struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &Customer{db: db}
}

func (c *Customer) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer

	err := GetTx(ctx, c.db).Where("id = ?", id).First(&customer).Error
	if err == nil {
		return &customer, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}

	return nil, err
}

// GetByIDForUpdate locks the customer row for the remainder of the enclosing
// transaction so concurrent debits serialize on the balance check.
func (c *Customer) GetByIDForUpdate(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer

	err := GetTx(ctx, c.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&customer).Error
	if err == nil {
		return &customer, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}

	return nil, err
}

func (c *Customer) UpdateBalance(ctx context.Context, id int64, balance int64) error {
	return GetTx(ctx, c.db).Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"coins_balance": balance,
			"updated_at":    time.Now(),
		}).Error
}

func (c *Customer) ResetBalance(ctx context.Context, id int64, balance int64, resetAt time.Time) error {
	return GetTx(ctx, c.db).Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"coins_balance":    balance,
			"coins_last_reset": resetAt,
			"updated_at":       time.Now(),
		}).Error
}
