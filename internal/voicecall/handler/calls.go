package handler

import (
	"net/http"

	"livekit-henryk/internal/apierrors"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

// TestCallResponse is returned by POST /test-call
type TestCallResponse struct {
	Status string `json:"status"`
	processor.TestCall
	Message string `json:"message"`
}

// HandleTestCall handles POST /test-call
func (h *Handler) HandleTestCall(c *gin.Context) {
	ctx := c.Request.Context()

	call, err := h.voiceProcessor.CreateTestCall(ctx)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TestCallResponse{
		Status:   "success",
		TestCall: call,
		Message:  "Room created. Open meet_url to join the call.",
	})
}

// DialLeadRequest is the body of POST /dial-lead
type DialLeadRequest struct {
	PhoneNumber     string `json:"phone_number" binding:"required,e164"`
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"max=100"`
	InitialGreeting *bool  `json:"initial_greeting"`
}

// HandleDialLead handles POST /dial-lead
func (h *Handler) HandleDialLead(c *gin.Context) {
	ctx := c.Request.Context()

	var req DialLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "first_name", Value: req.FirstName})

	greeting := true
	if req.InitialGreeting != nil {
		greeting = *req.InitialGreeting
	}

	res, err := h.voiceProcessor.DialLead(ctx, processor.DialLeadParams{
		PhoneNumber:     req.PhoneNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		InitialGreeting: greeting,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// HandleHealth handles GET /health. It checks nothing beyond the process being up.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"agent_name": h.voiceProcessor.AgentName(),
	})
}
