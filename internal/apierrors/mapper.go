package apierrors

import (
	"errors"

	"livekit-henryk/internal/clients/livekit"
	"livekit-henryk/internal/store"
	voicecallProcessor "livekit-henryk/internal/voicecall/processor"
	webhookProcessor "livekit-henryk/internal/webhooks/processor"
	webhookService "livekit-henryk/internal/webhooks/service"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, voicecallProcessor.ErrInvalidPhoneNumber):
		return BadRequest(CodeInvalidPhoneNumber, "phone_number must be in E.164 format, e.g. +14155551234")

	case errors.Is(err, voicecallProcessor.ErrInvalidRoomName):
		return BadRequest(CodeInvalidInput, "Invalid room name")

	case errors.Is(err, voicecallProcessor.ErrInboundDisabled):
		return ServiceUnavailable(CodeInboundDisabled, "Inbound calls are not configured", err)

	case errors.Is(err, livekit.ErrInvalidWebhook):
		return Unauthorized(CodeInvalidSignature, "Webhook signature could not be verified")

	case errors.Is(err, webhookProcessor.ErrQueueFull):
		return ServiceUnavailable(CodeQueueFull, "Post-call processing is saturated. Please retry later.", err)

	case errors.Is(err, livekit.ErrProvider):
		return BadGateway(CodeProviderError, "Voice platform request failed", err)

	case errors.Is(err, webhookService.ErrWebhook):
		return BadGateway(CodeWebhookFailed, "Downstream webhook did not accept the notification", err)

	case errors.Is(err, webhookService.ErrDeliveryInFlight):
		return Conflict(CodeDeliveryInProgress, "Notification is already being delivered")

	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return InternalError(err)
	}
}
