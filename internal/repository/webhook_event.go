package repository

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"gorm.io/gorm"
)

type WebhookEventRepository interface {
	Create(ctx context.Context, event *model.WebhookEvent) error
	ListUnresolved(ctx context.Context, limit int) ([]model.WebhookEvent, error)
}

type WebhookEvent struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &WebhookEvent{db: db}
}

func (w *WebhookEvent) Create(ctx context.Context, event *model.WebhookEvent) error {
	return GetTx(ctx, w.db).Create(event).Error
}

func (w *WebhookEvent) ListUnresolved(ctx context.Context, limit int) ([]model.WebhookEvent, error) {
	var events []model.WebhookEvent

	err := GetTx(ctx, w.db).
		Where("state = ?", model.WebhookEventStateUnresolved).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
