package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/repository"
	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingWorkflowService interface {
	CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResponse, error)
}

type bookingWorkflow struct {
	customerRepo repository.CustomerRepository
	resourceRepo repository.ResourceRepository
	availability AvailabilityService
	pricing      PricingService
	ledger       LedgerService
	booking      BookingService
	gateway      razorpay.Gateway
	gatewayCfg   razorpay.Config
	logger       *zap.Logger
}

func NewBookingWorkflowService(customerRepo repository.CustomerRepository, resourceRepo repository.ResourceRepository,
	availability AvailabilityService, pricing PricingService, ledger LedgerService, booking BookingService,
	gateway razorpay.Gateway, gatewayCfg razorpay.Config, logger *zap.Logger) BookingWorkflowService {
	return &bookingWorkflow{customerRepo: customerRepo, resourceRepo: resourceRepo, availability: availability,
		pricing: pricing, ledger: ledger, booking: booking, gateway: gateway, gatewayCfg: gatewayCfg, logger: logger}
}

func (w *bookingWorkflow) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResponse, error) {
	if !cmd.EndTime.After(cmd.StartTime) {
		return nil, NewServiceError(constants.ErrCodeInvalidTimeRange, ErrInvalidTimeRange)
	}

	// The reset runs before the customer row is read. Reading first would
	// gate the booking on a balance from the previous month.
	if err := w.ledger.ResetIfDue(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	customer, err := w.customerRepo.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, NewServiceError(constants.ErrCodeCustomerNotFound, ErrCustomerNotFound)
		}
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	resource, err := w.resourceRepo.GetByCode(ctx, cmd.ResourceCode)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, NewServiceError(constants.ErrCodeResourceNotFound, ErrResourceNotFound)
		}
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	if resource.AvailabilityStatus == model.AvailabilityStatusMaintenance {
		return nil, NewServiceError(constants.ErrCodeResourceUnavailable,
			fmt.Errorf("resource %s is under maintenance", resource.Code))
	}

	available, err := w.availability.IsAvailable(ctx, resource.ID, cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}

	if !available {
		return nil, NewServiceError(constants.ErrCodeSlotConflict,
			fmt.Errorf("resource %s is booked for the requested window", resource.Code))
	}

	quote, err := w.pricing.Price(resource.HourlyRate, cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}

	bk := &model.Booking{
		CustomerID:      customer.ID,
		ResourceID:      resource.ID,
		BookingType:     resource.ResourceType,
		StartTime:       cmd.StartTime,
		EndTime:         cmd.EndTime,
		NumParticipants: cmd.NumParticipants,
		Amenities:       cmd.Amenities,
		TotalAmount:     quote.Amount,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if resource.PricingMode == model.PricingModeCoins {
		return w.createCoinBooking(ctx, customer, bk, quote)
	}

	return w.createGatewayBooking(ctx, customer, bk, quote)
}

func (w *bookingWorkflow) createCoinBooking(ctx context.Context, customer *model.Customer,
	bk *model.Booking, quote Quote) (*CreateBookingResponse, error) {

	coins := quote.Coins()

	// Fast pre-check on the already-loaded row; the authoritative check
	// happens under the row lock inside the debit.
	if customer.CoinsBalance < coins {
		return nil, NewServiceError(constants.ErrCodeInsufficientCoins, InsufficientBalanceError{
			Available: customer.CoinsBalance,
			Required:  coins,
			Shortfall: coins - customer.CoinsBalance,
		})
	}

	bk.Status = model.BookingStatusConfirmed
	bk.PaymentStatus = model.PaymentStatusCompleted
	bk.PaymentMethod = model.PaymentMethodCoins

	coinTx, err := w.booking.CreateConfirmedTx(ctx, bk, coins)
	if err != nil {
		return nil, err
	}

	w.logger.Info("Coin booking confirmed",
		zap.Int64("bookingID", bk.ID),
		zap.Int64("customerID", customer.ID),
		zap.Int64("coins", coins))

	return &CreateBookingResponse{
		Booking: bk,
		Payment: PaymentDescriptor{
			Method:         model.PaymentMethodCoins,
			CoinsUsed:      coins,
			CoinsRemaining: coinTx.BalanceAfter,
		},
	}, nil
}

// createGatewayBooking creates the external order before the booking row,
// so a gateway failure leaves no orphaned PENDING booking behind.
func (w *bookingWorkflow) createGatewayBooking(ctx context.Context, customer *model.Customer,
	bk *model.Booking, quote Quote) (*CreateBookingResponse, error) {

	receipt := uuid.NewString()
	orderReq := razorpay.CreateOrderRequest{
		Amount:  quote.AmountMinor(),
		Receipt: receipt,
		Notes: map[string]string{
			"customer_id": strconv.FormatInt(customer.ID, 10),
			"resource_id": strconv.FormatInt(bk.ResourceID, 10),
		},
	}

	order, err := w.createOrderWithRetry(ctx, orderReq, customer.ID, receipt)
	if err != nil {
		return nil, err
	}

	bk.Status = model.BookingStatusPending
	bk.PaymentStatus = model.PaymentStatusPending
	bk.PaymentMethod = model.PaymentMethodGateway
	bk.OrderID = &order.ID

	if err := w.booking.CreatePendingWithOrder(ctx, bk); err != nil {
		w.logger.Error("Booking row creation failed after order was created",
			zap.Error(err),
			zap.String("orderID", order.ID))
		return nil, err
	}

	w.logger.Info("Gateway booking created",
		zap.Int64("bookingID", bk.ID),
		zap.String("orderID", order.ID),
		zap.Int64("amountMinor", order.Amount))

	return &CreateBookingResponse{
		Booking: bk,
		Payment: PaymentDescriptor{
			Method:      model.PaymentMethodGateway,
			OrderID:     order.ID,
			AmountMinor: order.Amount,
			Currency:    order.Currency,
			KeyID:       w.gatewayCfg.KeyID,
		},
	}, nil
}

// createOrderWithRetry retries transient gateway failures up to the
// configured attempt count. Request errors and auth failures never retry;
// resubmitting the same bad request cannot change the answer.
func (w *bookingWorkflow) createOrderWithRetry(ctx context.Context, orderReq razorpay.CreateOrderRequest,
	customerID int64, receipt string) (razorpay.Order, error) {

	var lastErr error

	for attempt := 1; attempt <= w.gatewayCfg.MaxRetries; attempt++ {
		order, err := w.gateway.CreateOrder(ctx, orderReq)
		if err == nil {
			if attempt > 1 {
				w.logger.Info("Gateway order created after retry",
					zap.Int("attempt", attempt),
					zap.String("receipt", receipt))
			}
			return order, nil
		}

		if errors.Is(err, razorpay.ErrBadRequest) || errors.Is(err, razorpay.ErrAuth) {
			w.logger.Warn("Non-retryable gateway error on order creation",
				zap.Error(err),
				zap.Int64("customerID", customerID),
				zap.String("receipt", receipt))
			return razorpay.Order{}, NewServiceError(constants.ErrCodeGatewayError, err)
		}

		w.logger.Warn("Gateway order creation attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("receipt", receipt))
		lastErr = err
	}

	if errors.Is(lastErr, razorpay.ErrTimeout) {
		w.logger.Error("Gateway order creation timed out",
			zap.Int64("customerID", customerID),
			zap.String("receipt", receipt))
		return razorpay.Order{}, NewServiceError(constants.ErrCodeGatewayTimeout, lastErr)
	}

	w.logger.Error("Gateway order creation failed",
		zap.Error(lastErr),
		zap.Int64("customerID", customerID),
		zap.String("receipt", receipt))
	return razorpay.Order{}, NewServiceError(constants.ErrCodeGatewayError, lastErr)
}
