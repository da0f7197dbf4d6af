package repository

import (
	"context"
	"errors"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("BOOKING_NOT_FOUND")
var ErrBookingDuplicateOrder = errors.New("BOOKING_DUPLICATE_ORDER")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error)
	CountOverlapping(ctx context.Context, resourceID int64, start, end time.Time) (int64, error)
	GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]model.Booking, error)
	CountByCustomerID(ctx context.Context, customerID int64) (int64, error)
	FindRefundable(ctx context.Context, limit int) ([]model.Booking, error)
	MarkRefundQueued(ctx context.Context, bookingID int64, queuedAt time.Time) error
}

type Booking struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &Booking{db: db}
}

func (b *Booking) Create(ctx context.Context, booking *model.Booking) error {
	err := GetTx(ctx, b.db).Create(booking).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrBookingDuplicateOrder
	}

	return err
}

func (b *Booking) Update(ctx context.Context, booking *model.Booking) error {
	return GetTx(ctx, b.db).Model(booking).Where("id = ?", booking.ID).Updates(booking).Error
}

func (b *Booking) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking

	err := GetTx(ctx, b.db).Where("id = ?", id).First(&booking).Error
	if err == nil {
		return &booking, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}

	return nil, err
}

func (b *Booking) GetByOrderID(ctx context.Context, orderID string) (*model.Booking, error) {
	var booking model.Booking

	err := GetTx(ctx, b.db).Where("order_id = ?", orderID).First(&booking).Error
	if err == nil {
		return &booking, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}

	return nil, err
}

// CountOverlapping uses half-open interval semantics: a booking ending
// exactly at start does not overlap.
func (b *Booking) CountOverlapping(ctx context.Context, resourceID int64, start, end time.Time) (int64, error) {
	var count int64

	err := GetTx(ctx, b.db).Model(&model.Booking{}).
		Where("resource_id = ? AND status != ? AND start_time < ? AND end_time > ?",
			resourceID, model.BookingStatusCancelled, end, start).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (b *Booking) GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]model.Booking, error) {
	var bookings []model.Booking

	err := GetTx(ctx, b.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (b *Booking) CountByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var count int64

	err := GetTx(ctx, b.db).Model(&model.Booking{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// FindRefundable returns cancelled gateway bookings whose payment was
// captured and not yet queued for refund.
func (b *Booking) FindRefundable(ctx context.Context, limit int) ([]model.Booking, error) {
	var bookings []model.Booking

	err := GetTx(ctx, b.db).
		Where("status = ? AND payment_status = ? AND payment_method = ? AND refund_queued_at IS NULL",
			model.BookingStatusCancelled, model.PaymentStatusCompleted, model.PaymentMethodGateway).
		Order("updated_at ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (b *Booking) MarkRefundQueued(ctx context.Context, bookingID int64, queuedAt time.Time) error {
	result := GetTx(ctx, b.db).Model(&model.Booking{}).
		Where("id = ? AND refund_queued_at IS NULL", bookingID).
		Updates(map[string]interface{}{
			"refund_queued_at": queuedAt,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
