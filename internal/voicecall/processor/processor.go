// Package processor sets up calls: browser test calls through LiveKit Meet,
// outbound calls to leads through the SIP bridge, and inbound PSTN calls.
package processor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"livekit-henryk/internal/calls"
	lkclient "livekit-henryk/internal/clients/livekit"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidRoomName    = errors.New("invalid room name")
	// ErrInboundDisabled is returned when no SIP host is configured for inbound calls.
	ErrInboundDisabled = errors.New("inbound calls are not configured")
)

var (
	e164Pattern     = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	roomNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
)

// ValidPhoneNumber reports whether s is an E.164 number such as +14155551234.
func ValidPhoneNumber(s string) bool {
	return e164Pattern.MatchString(s)
}

// ValidRoomName reports whether s can be used as a room name in URLs and storage keys.
func ValidRoomName(s string) bool {
	return roomNamePattern.MatchString(s)
}

// Platform is the part of the voice platform used to set up calls
type Platform interface {
	CreateRoom(ctx context.Context, params lkclient.CreateRoomParams) error
	Dial(ctx context.Context, params lkclient.DialParams) (string, error)
	DeleteRoom(ctx context.Context, roomName string) error
	ParticipantToken(params lkclient.TokenParams) (string, error)
}

// PromptSource renders the agent's system prompt
type PromptSource interface {
	SystemPrompt(ctx context.Context, now time.Time, timezone string) string
}

// CallStore persists call records
type CallStore interface {
	SaveCall(ctx context.Context, rec calls.Record) error
}

// EventPublisher announces new calls
type EventPublisher interface {
	CallCreated(ctx context.Context, rec calls.Record)
}

// Dependencies groups what the processor needs. Events and Metrics are optional.
type Dependencies struct {
	Platform Platform
	Prompts  PromptSource
	Calls    CallStore
	Registry *calls.Registry
	Events   EventPublisher
	Metrics  *observability.Metrics
}

// VoiceCallProcessor creates rooms, dispatches the agent into them and places calls
type VoiceCallProcessor struct {
	livekit  config.LiveKitConfig
	sip      config.SIPConfig
	agent    config.AgentConfig
	platform Platform
	prompts  PromptSource
	calls    CallStore
	registry *calls.Registry
	events   EventPublisher
	metrics  *observability.Metrics
	logger   *observability.Logger
	now      func() time.Time
}

func NewVoiceCallProcessor(livekit config.LiveKitConfig, sip config.SIPConfig, agent config.AgentConfig, deps Dependencies, logger *observability.Logger) *VoiceCallProcessor {
	return &VoiceCallProcessor{
		livekit:  livekit,
		sip:      sip,
		agent:    agent,
		platform: deps.Platform,
		prompts:  deps.Prompts,
		calls:    deps.Calls,
		registry: deps.Registry,
		events:   deps.Events,
		metrics:  deps.Metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// AgentName is the name the agent worker registered with
func (v *VoiceCallProcessor) AgentName() string {
	return v.agent.Name
}

// agentMetadata is attached to the room and the agent dispatch
type agentMetadata struct {
	calls.RoomMetadata
	Instructions string `json:"instructions,omitempty"`
}

// TestCall is a browser call joinable through LiveKit Meet
type TestCall struct {
	RoomName   string `json:"room_name"`
	MeetURL    string `json:"meet_url"`
	LiveKitURL string `json:"livekit_url"`
	Token      string `json:"token"`
}

// CreateTestCall creates a room with the agent dispatched and returns a token
// for a browser participant.
func (v *VoiceCallProcessor) CreateTestCall(ctx context.Context) (TestCall, error) {
	room, err := newRoomName("call_")
	if err != nil {
		return TestCall{}, err
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: room},
		observability.Field{Key: "call_kind", Value: calls.KindTest},
	)

	rec := calls.Record{RoomName: room, Kind: calls.KindTest, CreatedAt: v.now().UTC()}
	meta := calls.RoomMetadata{TestCall: true, RoomName: room}
	if err := v.createRoom(ctx, rec, meta); err != nil {
		return TestCall{}, err
	}

	suffix, err := randomHex(3)
	if err != nil {
		return TestCall{}, err
	}
	token, err := v.platform.ParticipantToken(lkclient.TokenParams{
		RoomName: room,
		Identity: "tester_" + suffix,
		Name:     "Test User",
		Metadata: `{"test_call":true}`,
	})
	if err != nil {
		v.logger.Error(ctx, "failed to issue participant token", err)
		return TestCall{}, err
	}

	v.logger.Info(ctx, "test call ready")
	return TestCall{
		RoomName:   room,
		MeetURL:    fmt.Sprintf("%s/?url=%s&token=%s", strings.TrimSuffix(v.livekit.MeetURL, "/"), v.livekit.PublicURL, token),
		LiveKitURL: v.livekit.PublicURL,
		Token:      token,
	}, nil
}

// DialLeadParams describes an outbound call to a lead
type DialLeadParams struct {
	PhoneNumber     string
	FirstName       string
	LastName        string
	InitialGreeting bool
}

// DialResult is returned once the SIP bridge accepted the call; the phone may still be ringing
type DialResult struct {
	RoomName  string `json:"room_name"`
	SIPCallID string `json:"sip_call_id"`
	Status    string `json:"status"`
}

// DialLead validates the number, creates a room with the agent and asks the SIP
// bridge to call the lead into it. Nothing is created for an invalid number.
func (v *VoiceCallProcessor) DialLead(ctx context.Context, params DialLeadParams) (DialResult, error) {
	if !ValidPhoneNumber(params.PhoneNumber) {
		return DialResult{}, fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, params.PhoneNumber)
	}

	room, err := newRoomName("lead_")
	if err != nil {
		return DialResult{}, err
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: room},
		observability.Field{Key: "call_kind", Value: calls.KindLead},
	)

	rec := calls.Record{
		RoomName:    room,
		Kind:        calls.KindLead,
		PhoneNumber: params.PhoneNumber,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		CreatedAt:   v.now().UTC(),
	}
	greeting := params.InitialGreeting
	meta := calls.RoomMetadata{
		PhoneCall:       true,
		RoomName:        room,
		PhoneNumber:     params.PhoneNumber,
		FirstName:       params.FirstName,
		LastName:        params.LastName,
		InitialGreeting: &greeting,
	}
	if err := v.createRoom(ctx, rec, meta); err != nil {
		return DialResult{}, err
	}

	sipCallID, err := v.platform.Dial(ctx, lkclient.DialParams{
		TrunkID:             v.sip.OutboundTrunkID,
		CallTo:              params.PhoneNumber,
		CallerID:            v.sip.CallerIDNumber,
		RoomName:            room,
		ParticipantIdentity: "sip_" + params.PhoneNumber,
		ParticipantName:     strings.TrimSpace(params.FirstName + " " + params.LastName),
	})
	if err != nil {
		if v.registry != nil {
			v.registry.Delete(room)
		}
		// the agent was already dispatched into the room
		if delErr := v.platform.DeleteRoom(context.WithoutCancel(ctx), room); delErr != nil {
			v.logger.Warn(ctx, "failed to delete room after dial failure: "+delErr.Error())
		}
		return DialResult{}, err
	}

	rec.SIPCallID = sipCallID
	if v.registry != nil {
		v.registry.Update(room, func(r *calls.Record) { r.SIPCallID = sipCallID })
	}
	v.persist(ctx, rec)

	v.logger.Info(ctx, "dialing lead")
	return DialResult{RoomName: room, SIPCallID: sipCallID, Status: "dialing"}, nil
}

// InboundSIPURI is where an inbound PSTN call to number is bridged into the
// voice platform's SIP endpoint.
func (v *VoiceCallProcessor) InboundSIPURI(number string) (string, error) {
	if v.sip.InboundHost == "" {
		return "", ErrInboundDisabled
	}
	if !ValidPhoneNumber(number) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, number)
	}
	return fmt.Sprintf("sip:%s@%s", number, v.sip.InboundHost), nil
}

// createRoom registers the call, then creates the room with the rendered
// prompt in the agent's dispatch metadata.
func (v *VoiceCallProcessor) createRoom(ctx context.Context, rec calls.Record, meta calls.RoomMetadata) error {
	metadata, err := json.Marshal(agentMetadata{
		RoomMetadata: meta,
		Instructions: v.prompts.SystemPrompt(ctx, v.now(), v.agent.Timezone),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal room metadata: %w", err)
	}

	// registered before the room exists so early webhooks find it
	if v.registry != nil {
		v.registry.Put(rec)
	}
	err = v.platform.CreateRoom(ctx, lkclient.CreateRoomParams{
		Name:      rec.RoomName,
		Metadata:  string(metadata),
		AgentName: v.agent.Name,
	})
	v.metrics.CallCreated(string(rec.Kind), err)
	if err != nil {
		if v.registry != nil {
			v.registry.Delete(rec.RoomName)
		}
		return err
	}

	if rec.Kind == calls.KindTest {
		v.persist(ctx, rec)
	}
	return nil
}

func (v *VoiceCallProcessor) persist(ctx context.Context, rec calls.Record) {
	if err := v.calls.SaveCall(ctx, rec); err != nil {
		v.logger.Error(ctx, "failed to persist call record", err)
	}
	if v.events != nil {
		v.events.CallCreated(ctx, rec)
	}
}

func newRoomName(prefix string) (string, error) {
	suffix, err := randomHex(4)
	if err != nil {
		return "", err
	}
	return prefix + suffix, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
