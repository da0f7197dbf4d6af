package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
	"go.uber.org/zap"
)

const (
	EventPaymentAuthorized = "payment.authorized"
	EventPaymentCaptured   = "payment.captured"
	EventPaymentFailed     = "payment.failed"
)

// webhookEnvelope is the subset of the gateway callback we act on.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ReconcilerService turns asynchronous gateway callbacks into booking and
// payment state transitions. Deliveries may be duplicated or arrive out of
// order; every handler path is idempotent.
type ReconcilerService interface {
	Process(ctx context.Context, body []byte, signature string) error
}

type reconciler struct {
	gateway     razorpay.Gateway
	booking     BookingService
	webhookRepo repository.WebhookEventRepository
	logger      *zap.Logger
}

func NewReconcilerService(gateway razorpay.Gateway, booking BookingService,
	webhookRepo repository.WebhookEventRepository, logger *zap.Logger) ReconcilerService {
	return &reconciler{gateway: gateway, booking: booking, webhookRepo: webhookRepo, logger: logger}
}

func (r *reconciler) Process(ctx context.Context, body []byte, signature string) error {
	if !r.gateway.VerifyWebhookSignature(body, signature) {
		r.logger.Warn("Webhook signature verification failed")
		return NewServiceError(constants.ErrCodeWebhookSignature, errors.New("invalid webhook signature"))
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		r.logger.Warn("Malformed webhook payload", zap.Error(err))
		return NewServiceError(constants.ErrCodeWebhookPayload, err)
	}

	entity := envelope.Payload.Payment.Entity

	switch envelope.Event {
	case EventPaymentAuthorized:
		// Authorization is not capture; the payment stays PENDING and the
		// booking is untouched. Recorded for the audit trail only.
		return r.record(ctx, envelope.Event, entity.OrderID, entity.ID,
			model.WebhookEventStateProcessed, body, nil)

	case EventPaymentCaptured:
		return r.applyCapture(ctx, envelope, body)

	case EventPaymentFailed:
		return r.applyFailure(ctx, envelope, body)

	default:
		r.logger.Debug("Ignoring unhandled webhook event",
			zap.String("event", envelope.Event))
		return r.record(ctx, envelope.Event, entity.OrderID, entity.ID,
			model.WebhookEventStateSkipped, body, nil)
	}
}

func (r *reconciler) applyCapture(ctx context.Context, envelope webhookEnvelope, body []byte) error {
	entity := envelope.Payload.Payment.Entity
	if entity.OrderID == "" {
		return NewServiceError(constants.ErrCodeWebhookPayload, errors.New("capture event without order_id"))
	}

	outcome, err := r.booking.ConfirmByOrderID(ctx, entity.OrderID, entity.ID)
	if err != nil {
		if errors.Is(err, ErrOrderNotResolved) {
			return r.recordUnresolved(ctx, envelope.Event, entity.OrderID, entity.ID, body)
		}
		return err
	}

	r.logger.Info("Capture reconciled",
		zap.String("orderID", entity.OrderID),
		zap.String("paymentID", entity.ID),
		zap.String("outcome", string(outcome)))

	return r.record(ctx, envelope.Event, entity.OrderID, entity.ID,
		model.WebhookEventStateProcessed, body, nil)
}

func (r *reconciler) applyFailure(ctx context.Context, envelope webhookEnvelope, body []byte) error {
	entity := envelope.Payload.Payment.Entity
	if entity.OrderID == "" {
		return NewServiceError(constants.ErrCodeWebhookPayload, errors.New("failure event without order_id"))
	}

	outcome, err := r.booking.CancelByOrderID(ctx, entity.OrderID, entity.ID)
	if err != nil {
		if errors.Is(err, ErrOrderNotResolved) {
			return r.recordUnresolved(ctx, envelope.Event, entity.OrderID, entity.ID, body)
		}
		return err
	}

	r.logger.Info("Failure reconciled",
		zap.String("orderID", entity.OrderID),
		zap.String("paymentID", entity.ID),
		zap.String("outcome", string(outcome)))

	return r.record(ctx, envelope.Event, entity.OrderID, entity.ID,
		model.WebhookEventStateProcessed, body, nil)
}

// recordUnresolved keeps the event for manual follow-up and acknowledges the
// delivery; guessing the booking by recency is never safe under concurrent
// checkouts.
func (r *reconciler) recordUnresolved(ctx context.Context, event, orderID, paymentID string, body []byte) error {
	r.logger.Error("Webhook could not be matched to a booking, queued for operator review",
		zap.String("event", event),
		zap.String("orderID", orderID),
		zap.String("paymentID", paymentID))

	reason := "no booking with matching order_id"
	return r.record(ctx, event, orderID, paymentID, model.WebhookEventStateUnresolved, body, &reason)
}

func (r *reconciler) record(ctx context.Context, event, orderID, paymentID, state string, body []byte, lastError *string) error {
	row := &model.WebhookEvent{
		EventType: event,
		OrderID:   orderID,
		PaymentID: paymentID,
		State:     state,
		Payload:   string(body),
		LastError: lastError,
		CreatedAt: time.Now(),
	}

	if err := r.webhookRepo.Create(ctx, row); err != nil {
		r.logger.Error("Failed to persist webhook event",
			zap.Error(err),
			zap.String("event", event),
			zap.String("orderID", orderID))
		return NewServiceError(ErrCodeDatabase, err)
	}

	return nil
}
