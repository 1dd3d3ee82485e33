package handler

import (
	"context"
	"net/http"

	"livekit-henryk/internal/apierrors"
	"livekit-henryk/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/livekit/protocol/livekit"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

// Receiver authenticates and decodes a platform webhook request
type Receiver interface {
	Receive(r *http.Request) (*livekit.WebhookEvent, error)
}

// EventProcessor applies a decoded event
type EventProcessor interface {
	HandleEvent(ctx context.Context, event *livekit.WebhookEvent) error
}

// Handler handles voice platform webhook HTTP requests
type Handler struct {
	receiver  Receiver
	processor EventProcessor
	logger    *observability.Logger
}

// New creates a new Handler
func New(receiver Receiver, processor EventProcessor, logger *observability.Logger) *Handler {
	return &Handler{
		receiver:  receiver,
		processor: processor,
		logger:    logger,
	}
}

// HandleLiveKitWebhook handles POST /livekit-henryk/webhook. Heavy work is
// queued, so any well-formed event is acknowledged right away.
func (h *Handler) HandleLiveKitWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	event, err := h.receiver.Receive(c.Request)
	if err != nil {
		h.logger.Warn(ctx, "rejected webhook: "+err.Error())
		apierrors.RespondWithError(c, err)
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event", Value: event.GetEvent()},
		observability.Field{Key: "event_id", Value: event.GetId()},
	)
	if err := h.processor.HandleEvent(ctx, event); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
