package handler

import (
	"fmt"
	"net/http"

	"livekit-henryk/internal/apierrors"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

func roomParam(c *gin.Context) (string, error) {
	room := c.Param("room")
	if !processor.ValidRoomName(room) {
		return "", fmt.Errorf("%w: %q", processor.ErrInvalidRoomName, room)
	}
	return room, nil
}

// HandleGetTranscript handles GET /calls/:room/transcript
func (h *Handler) HandleGetTranscript(c *gin.Context) {
	room, err := roomParam(c)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "room_name", Value: room})

	rec, err := h.transcripts.GetTranscript(ctx, room)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// HandleResend handles POST /calls/:room/resend
func (h *Handler) HandleResend(c *gin.Context) {
	room, err := roomParam(c)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "room_name", Value: room})

	if err := h.resender.Resend(ctx, room); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.logger.Info(ctx, "transcript resent on request")
	c.JSON(http.StatusOK, gin.H{"status": "delivered", "room_name": room})
}
