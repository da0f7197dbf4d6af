package razorpay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coworkhq/booking-services/bookinggateway/pkg/httpclient"
)

const (
	OrdersEndpoint  = "/v1/orders"
	RefundsEndpoint = "/v1/payments/%s/refund"
)

// Gateway is the Razorpay client surface the booking services depend on.
// Signature helpers live in signature.go and are pure computation.
type Gateway interface {
	CreateOrder(ctx context.Context, request CreateOrderRequest) (Order, error)
	RefundPayment(ctx context.Context, paymentID string, request RefundRequest) (Refund, error)
	VerifyWebhookSignature(body []byte, signature string) bool
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type gateway struct {
	client httpclient.HTTPClient
	config Config
}

func NewGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &gateway{config: cfg, client: client}
}

func (g *gateway) CreateOrder(ctx context.Context, request CreateOrderRequest) (Order, error) {
	if request.Currency == "" {
		request.Currency = g.config.Currency
	}

	var order Order
	if err := g.post(ctx, g.config.BaseURL+OrdersEndpoint, request, &order); err != nil {
		return Order{}, err
	}

	return order, nil
}

func (g *gateway) RefundPayment(ctx context.Context, paymentID string, request RefundRequest) (Refund, error) {
	url := g.config.BaseURL + fmt.Sprintf(RefundsEndpoint, paymentID)

	var refund Refund
	if err := g.post(ctx, url, request, &refund); err != nil {
		return Refund{}, err
	}

	return refund, nil
}

func (g *gateway) post(ctx context.Context, url string, request any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	resp, err := g.client.Post(ctx, url, &buf, g.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}

		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return MapStatusToError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding error: %w", err)
	}

	return nil
}

func (g *gateway) headers() map[string]string {
	auth := base64.StdEncoding.EncodeToString([]byte(g.config.KeyID + ":" + g.config.KeySecret))

	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Basic " + auth,
	}
}
