package v1

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/coworkhq/booking-services/bookinggateway/internal/constants"
	"github.com/coworkhq/booking-services/bookinggateway/internal/model"
	"github.com/coworkhq/booking-services/bookinggateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultPageSize = 20

type Handler struct {
	logger     *zap.Logger
	workflow   service.BookingWorkflowService
	booking    service.BookingService
	ledger     service.LedgerService
	reconciler service.ReconcilerService
}

func NewHandler(logger *zap.Logger, workflow service.BookingWorkflowService, booking service.BookingService,
	ledger service.LedgerService, reconciler service.ReconcilerService) *Handler {
	return &Handler{logger: logger, workflow: workflow, booking: booking, ledger: ledger, reconciler: reconciler}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	ctx := c.UserContext()
	customerID := c.Locals("customerID").(int64)

	var request CreateBookingRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse booking request body", zap.Error(err))
		return badRequest(c, constants.ErrCodeInvalidRequestBody)
	}

	if request.ResourceCode == "" {
		return badRequest(c, constants.ErrCodeValidation)
	}

	start, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		return badRequest(c, constants.ErrCodeValidation)
	}

	end, err := time.Parse(time.RFC3339, request.EndTime)
	if err != nil {
		return badRequest(c, constants.ErrCodeValidation)
	}

	cmd := service.CreateBookingCommand{
		CustomerID:      customerID,
		ResourceCode:    request.ResourceCode,
		StartTime:       start,
		EndTime:         end,
		NumParticipants: request.NumParticipants,
	}

	if len(request.Amenities) > 0 {
		raw, err := json.Marshal(request.Amenities)
		if err != nil {
			return badRequest(c, constants.ErrCodeValidation)
		}
		amenities := string(raw)
		cmd.Amenities = &amenities
	}

	resp, err := h.workflow.CreateBooking(ctx, cmd)
	if err != nil {
		return err
	}

	h.logger.Info("Booking created",
		zap.Int64("bookingID", resp.Booking.ID),
		zap.Int64("customerID", customerID),
		zap.String("method", string(resp.Payment.Method)))

	return c.Status(fiber.StatusCreated).JSON(OK("booking created", CreateBookingResponse{
		Booking: toBookingResponse(*resp.Booking),
		Payment: toPaymentResponse(resp.Payment),
	}))
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	ctx := c.UserContext()
	customerID := c.Locals("customerID").(int64)

	bookingID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, constants.ErrCodeValidation)
	}

	cmd := service.CancelBookingCommand{CustomerID: customerID, BookingID: bookingID}

	cancelled, err := h.booking.Cancel(ctx, cmd)
	if err != nil {
		return err
	}

	return c.JSON(OK("booking cancelled", toBookingResponse(*cancelled)))
}

func (h *Handler) ListBookings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	customerID := c.Locals("customerID").(int64)

	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)

	query := service.ListBookingsQuery{CustomerID: customerID, Limit: limit, Offset: offset}

	resp, err := h.booking.ListByCustomer(ctx, query)
	if err != nil {
		return err
	}

	bookings := make([]BookingResponse, 0, len(resp.Bookings))
	for _, bk := range resp.Bookings {
		bookings = append(bookings, toBookingResponse(bk))
	}

	return c.JSON(OK("bookings retrieved", ListBookingsResponse{Bookings: bookings, Total: resp.Total}))
}

func (h *Handler) GetCoins(c *fiber.Ctx) error {
	ctx := c.UserContext()
	customerID := c.Locals("customerID").(int64)

	statement, err := h.ledger.Statement(ctx, customerID)
	if err != nil {
		return err
	}

	transactions := make([]CoinTransactionResponse, 0, len(statement.Transactions))
	for _, tx := range statement.Transactions {
		transactions = append(transactions, CoinTransactionResponse{
			ID:              tx.ID,
			Amount:          tx.Amount,
			TransactionType: tx.TransactionType,
			BalanceAfter:    tx.BalanceAfter,
			BookingID:       tx.BookingID,
			Description:     tx.Description,
			CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(OK("coin balance retrieved", CoinStatementResponse{
		Balance:      statement.Balance,
		LastReset:    statement.LastReset,
		MaxCoins:     statement.MaxCoins,
		Transactions: transactions,
	}))
}

// Webhook receives gateway callbacks. The raw body goes to the reconciler
// untouched; signature verification happens over these exact bytes.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	ctx := c.UserContext()

	signature := c.Get("X-Razorpay-Signature")
	body := c.Body()

	if err := h.reconciler.Process(ctx, body, signature); err != nil {
		return err
	}

	return c.JSON(Envelope{Success: true, Message: "webhook processed", Data: nil})
}

func badRequest(c *fiber.Ctx, code string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: constants.GetErrorMessage(code),
		Error:   code,
	})
}

func toBookingResponse(bk model.Booking) BookingResponse {
	return BookingResponse{
		ID:              bk.ID,
		ResourceID:      bk.ResourceID,
		BookingType:     string(bk.BookingType),
		StartTime:       bk.StartTime.Format(time.RFC3339),
		EndTime:         bk.EndTime.Format(time.RFC3339),
		NumParticipants: bk.NumParticipants,
		Amenities:       bk.Amenities,
		TotalAmount:     bk.TotalAmount.StringFixed(2),
		Status:          string(bk.Status),
		PaymentStatus:   string(bk.PaymentStatus),
		PaymentMethod:   string(bk.PaymentMethod),
		OrderID:         bk.OrderID,
		CreatedAt:       bk.CreatedAt.Format(time.RFC3339),
	}
}

func toPaymentResponse(p service.PaymentDescriptor) PaymentResponse {
	return PaymentResponse{
		Method:         string(p.Method),
		CoinsUsed:      p.CoinsUsed,
		CoinsRemaining: p.CoinsRemaining,
		OrderID:        p.OrderID,
		AmountMinor:    p.AmountMinor,
		Currency:       p.Currency,
		KeyID:          p.KeyID,
	}
}
