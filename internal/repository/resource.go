package repository

import (
	"context"
	"errors"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrResourceNotFound = errors.New("RESOURCE_NOT_FOUND")

type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Resource, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Resource, error)
	GetByCode(ctx context.Context, code string) (*model.Resource, error)
	UpdateAvailability(ctx context.Context, id int64, status model.AvailabilityStatus) error
}

type Resource struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &Resource{db: db}
}

func (r *Resource) GetByID(ctx context.Context, id int64) (*model.Resource, error) {
	var resource model.Resource

	err := GetTx(ctx, r.db).Where("id = ?", id).First(&resource).Error
	if err == nil {
		return &resource, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResourceNotFound
	}

	return nil, err
}

// GetByIDForUpdate locks the resource row for the remainder of the
// enclosing transaction so overlap checks for the same resource serialize.
func (r *Resource) GetByIDForUpdate(ctx context.Context, id int64) (*model.Resource, error) {
	var resource model.Resource

	err := GetTx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&resource).Error
	if err == nil {
		return &resource, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResourceNotFound
	}

	return nil, err
}

func (r *Resource) GetByCode(ctx context.Context, code string) (*model.Resource, error) {
	var resource model.Resource

	err := GetTx(ctx, r.db).Where("code = ?", code).First(&resource).Error
	if err == nil {
		return &resource, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResourceNotFound
	}

	return nil, err
}

func (r *Resource) UpdateAvailability(ctx context.Context, id int64, status model.AvailabilityStatus) error {
	return GetTx(ctx, r.db).Model(&model.Resource{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"availability_status": status,
			"updated_at":          time.Now(),
		}).Error
}
