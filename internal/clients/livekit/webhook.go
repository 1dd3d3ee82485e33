package livekit

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/webhook"
	"google.golang.org/protobuf/encoding/protojson"
)

// ErrInvalidWebhook is returned when a webhook request is unsigned, signed with
// the wrong key, or its body does not match the signed digest.
var ErrInvalidWebhook = errors.New("invalid webhook request")

// Event types sent by the platform that the service reacts to
const (
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
	EventTrackPublished    = "track_published"
	EventEgressEnded       = "egress_ended"
	EventRoomFinished      = "room_finished"
)

// Attributes set by the SIP bridge on SIP participants
const (
	// SIPCallStatusAttribute is "active" once the call is answered.
	SIPCallStatusAttribute  = "sip.callStatus"
	SIPCallIDAttribute      = "sip.callID"
	SIPPhoneNumberAttribute = "sip.phoneNumber"
)

// WebhookReceiver authenticates and decodes platform webhook requests
type WebhookReceiver struct {
	provider   auth.KeyProvider
	skipVerify bool
}

// NewWebhookReceiver verifies with the API key pair unless skipVerify is set, which is meant for local testing only.
func NewWebhookReceiver(apiKey, apiSecret string, skipVerify bool) *WebhookReceiver {
	return &WebhookReceiver{
		provider:   auth.NewSimpleKeyProvider(apiKey, apiSecret),
		skipVerify: skipVerify,
	}
}

// Receive reads the request body and returns the decoded event.
func (w *WebhookReceiver) Receive(r *http.Request) (*livekit.WebhookEvent, error) {
	if w.skipVerify {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read webhook body: %w", err)
		}
		event := &livekit.WebhookEvent{}
		if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(body, event); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
		}
		return event, nil
	}

	event, err := webhook.ReceiveWebhookEvent(r, w.provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	return event, nil
}

// IsAgent reports whether the participant is a dispatched agent.
func IsAgent(p *livekit.ParticipantInfo) bool {
	return p.GetKind() == livekit.ParticipantInfo_AGENT
}

// IsAnsweredCaller reports whether the participant is a human whose audio is live:
// browser participants always, SIP participants once the call is answered.
func IsAnsweredCaller(p *livekit.ParticipantInfo) bool {
	if p == nil || IsAgent(p) {
		return false
	}
	if p.GetKind() == livekit.ParticipantInfo_SIP {
		return p.GetAttributes()[SIPCallStatusAttribute] == "active"
	}
	return true
}
