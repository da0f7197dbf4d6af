package razorpay

import "errors"

const (
	StatusOK                 = 200
	StatusBadRequest         = 400
	StatusUnauthorized       = 401
	StatusNotFound           = 404
	StatusTooManyRequests    = 429
	StatusInternalServer     = 500
	StatusServiceUnavailable = 503
)

const (
	ErrCodeBadRequest  = "GATEWAY_BAD_REQUEST"
	ErrCodeAuth        = "GATEWAY_AUTH_FAILED"
	ErrCodeNotFound    = "GATEWAY_ENTITY_NOT_FOUND"
	ErrCodeRateLimited = "GATEWAY_RATE_LIMITED"
	ErrCodeTimeout     = "GATEWAY_TIMEOUT"
	ErrCodeServerError = "GATEWAY_SERVER_ERROR"
)

var (
	ErrBadRequest  = errors.New(ErrCodeBadRequest)
	ErrAuth        = errors.New(ErrCodeAuth)
	ErrNotFound    = errors.New(ErrCodeNotFound)
	ErrRateLimited = errors.New(ErrCodeRateLimited)
	ErrTimeout     = errors.New(ErrCodeTimeout)
	ErrServerError = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	StatusBadRequest:      ErrBadRequest,
	StatusUnauthorized:    ErrAuth,
	StatusNotFound:        ErrNotFound,
	StatusTooManyRequests: ErrRateLimited,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
