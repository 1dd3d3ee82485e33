package apierrors

import (
	"fmt"
	"net/http"
)

// Error codes returned to API clients
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidPhoneNumber = "INVALID_PHONE_NUMBER"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidSignature   = "INVALID_SIGNATURE"
	CodeNotFound           = "NOT_FOUND"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeQueueFull          = "QUEUE_FULL"
	CodeWebhookFailed      = "WEBHOOK_FAILED"
	CodeDeliveryInProgress = "DELIVERY_IN_PROGRESS"
	CodeInboundDisabled    = "INBOUND_DISABLED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError is an error that knows how it should be presented over HTTP
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// BadRequest returns a 400 APIError
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized returns a 401 APIError
func Unauthorized(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: code, Message: message}
}

// NotFound returns a 404 APIError
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// Conflict returns a 409 APIError
func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

// BadGateway returns a 502 APIError for upstream provider failures
func BadGateway(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusBadGateway, Code: code, Message: message, Err: err}
}

// ServiceUnavailable returns a 503 APIError
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError returns a sanitized 500 APIError - never exposes internal details
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
