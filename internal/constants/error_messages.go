package constants

const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidTimeRange    = "INVALID_TIME_RANGE"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeSlotConflict        = "SLOT_CONFLICT"
	ErrCodeInsufficientCoins   = "INSUFFICIENT_BALANCE"
	ErrCodeCustomerNotFound    = "CUSTOMER_NOT_FOUND"
	ErrCodeResourceNotFound    = "RESOURCE_NOT_FOUND"
	ErrCodeBookingNotFound     = "BOOKING_NOT_FOUND"
	ErrCodeResourceUnavailable = "RESOURCE_UNAVAILABLE"
	ErrCodeBookingNotCancel    = "BOOKING_NOT_CANCELLABLE"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeProfileIncomplete   = "PROFILE_INCOMPLETE"
	ErrCodeWebhookSignature    = "WEBHOOK_SIGNATURE_INVALID"
	ErrCodeWebhookPayload      = "WEBHOOK_PAYLOAD_INVALID"
	ErrCodeGatewayError        = "PAYMENT_GATEWAY_ERROR"
	ErrCodeGatewayTimeout      = "PAYMENT_GATEWAY_TIMEOUT"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const (
	ErrMsgValidation          = "invalid booking request"
	ErrMsgInvalidTimeRange    = "end time must be after start time"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
	ErrMsgSlotConflict        = "the requested slot overlaps an existing booking"
	ErrMsgInsufficientCoins   = "insufficient coin balance"
	ErrMsgCustomerNotFound    = "customer not found"
	ErrMsgResourceNotFound    = "resource not found"
	ErrMsgBookingNotFound     = "booking not found"
	ErrMsgResourceUnavailable = "resource is not available for booking"
	ErrMsgBookingNotCancel    = "booking can no longer be cancelled"
	ErrMsgUnauthorized        = "missing or invalid access token"
	ErrMsgProfileIncomplete   = "identity or address proof is missing"
	ErrMsgWebhookSignature    = "webhook signature verification failed"
	ErrMsgWebhookPayload      = "malformed webhook payload"
	ErrMsgGatewayError        = "payment gateway request failed"
	ErrMsgGatewayTimeout      = "payment gateway request timed out"
	ErrMsgInternalError       = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeValidation:          ErrMsgValidation,
	ErrCodeInvalidTimeRange:    ErrMsgInvalidTimeRange,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
	ErrCodeSlotConflict:        ErrMsgSlotConflict,
	ErrCodeInsufficientCoins:   ErrMsgInsufficientCoins,
	ErrCodeCustomerNotFound:    ErrMsgCustomerNotFound,
	ErrCodeResourceNotFound:    ErrMsgResourceNotFound,
	ErrCodeBookingNotFound:     ErrMsgBookingNotFound,
	ErrCodeResourceUnavailable: ErrMsgResourceUnavailable,
	ErrCodeBookingNotCancel:    ErrMsgBookingNotCancel,
	ErrCodeUnauthorized:        ErrMsgUnauthorized,
	ErrCodeProfileIncomplete:   ErrMsgProfileIncomplete,
	ErrCodeWebhookSignature:    ErrMsgWebhookSignature,
	ErrCodeWebhookPayload:      ErrMsgWebhookPayload,
	ErrCodeGatewayError:        ErrMsgGatewayError,
	ErrCodeGatewayTimeout:      ErrMsgGatewayTimeout,
	ErrCodeInternalError:       ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidTimeRange, ErrCodeInvalidRequestBody,
		ErrCodeSlotConflict, ErrCodeInsufficientCoins, ErrCodeResourceUnavailable,
		ErrCodeWebhookSignature, ErrCodeWebhookPayload:
		return 400
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeProfileIncomplete:
		return 403
	case ErrCodeCustomerNotFound, ErrCodeResourceNotFound, ErrCodeBookingNotFound:
		return 404
	case ErrCodeBookingNotCancel:
		return 409
	case ErrCodeGatewayError:
		return 502
	case ErrCodeGatewayTimeout:
		return 504
	default:
		return 500
	}
}
