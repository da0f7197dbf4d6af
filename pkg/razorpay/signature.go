package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyWebhookSignature checks the X-Razorpay-Signature header value against
// the raw webhook body. Verification is unconditional; there is no test-mode
// bypass.
func (g *gateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return verify([]byte(g.config.WebhookSecret), body, signature)
}

// VerifyPaymentSignature checks a checkout callback signature computed over
// "<order_id>|<payment_id>" with the API key secret.
func (g *gateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	payload := orderID + "|" + paymentID
	return verify([]byte(g.config.KeySecret), []byte(payload), signature)
}

func verify(secret, payload []byte, signature string) bool {
	if len(signature) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
