package handler

import (
	"context"

	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/store"
	"livekit-henryk/internal/voicecall/processor"

	"github.com/twilio/twilio-go/client"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

// CallProcessor sets up calls
type CallProcessor interface {
	CreateTestCall(ctx context.Context) (processor.TestCall, error)
	DialLead(ctx context.Context, params processor.DialLeadParams) (processor.DialResult, error)
	InboundSIPURI(number string) (string, error)
	AgentName() string
}

// TranscriptStore reads persisted transcripts
type TranscriptStore interface {
	GetTranscript(ctx context.Context, room string) (store.TranscriptRecord, error)
}

// Resender delivers a stored transcript again
type Resender interface {
	Resend(ctx context.Context, room string) error
}

type Handler struct {
	voiceProcessor CallProcessor
	transcripts    TranscriptStore
	resender       Resender
	twilio         *client.RequestValidator
	logger         *observability.Logger
}

// New creates the call handler. Twilio signatures are checked only when an auth token is configured.
func New(voiceProcessor CallProcessor, transcripts TranscriptStore, resender Resender, twilioCfg config.TwilioConfig, logger *observability.Logger) *Handler {
	h := &Handler{
		voiceProcessor: voiceProcessor,
		transcripts:    transcripts,
		resender:       resender,
		logger:         logger,
	}
	if twilioCfg.AuthToken != "" {
		validator := client.NewRequestValidator(twilioCfg.AuthToken)
		h.twilio = &validator
	}
	return h
}
