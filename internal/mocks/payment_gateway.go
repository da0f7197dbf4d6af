package mocks

import (
	"context"

	"github.com/coworkhq/booking-services/bookinggateway/pkg/razorpay"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (p *PaymentGateway) CreateOrder(ctx context.Context, request razorpay.CreateOrderRequest) (razorpay.Order, error) {
	args := p.Called(ctx, request)
	return args.Get(0).(razorpay.Order), args.Error(1)
}

func (p *PaymentGateway) RefundPayment(ctx context.Context, paymentID string, request razorpay.RefundRequest) (razorpay.Refund, error) {
	args := p.Called(ctx, paymentID, request)
	return args.Get(0).(razorpay.Refund), args.Error(1)
}

func (p *PaymentGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	args := p.Called(body, signature)
	return args.Bool(0)
}

func (p *PaymentGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	args := p.Called(orderID, paymentID, signature)
	return args.Bool(0)
}
