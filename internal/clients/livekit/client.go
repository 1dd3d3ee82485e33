package livekit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"

	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// ErrProvider wraps every failed call to the voice platform.
var ErrProvider = errors.New("voice platform request failed")

const (
	defaultEmptyTimeout    = 300 // seconds
	defaultMaxParticipants = 10
	tokenTTL               = 6 * time.Hour
)

// Client wraps the LiveKit room, SIP and egress services with observability
type Client struct {
	rooms     *lksdk.RoomServiceClient
	sip       *lksdk.SIPClient
	egress    *lksdk.EgressClient
	apiKey    string
	apiSecret string
	logger    *observability.Logger
}

// NewClient creates a new LiveKit server API client
func NewClient(cfg config.LiveKitConfig, logger *observability.Logger) *Client {
	return &Client{
		rooms:     lksdk.NewRoomServiceClient(cfg.URL, cfg.APIKey, cfg.APISecret),
		sip:       lksdk.NewSIPClient(cfg.URL, cfg.APIKey, cfg.APISecret),
		egress:    lksdk.NewEgressClient(cfg.URL, cfg.APIKey, cfg.APISecret),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		logger:    logger,
	}
}

// CreateRoomParams describes a room with an agent dispatched into it
type CreateRoomParams struct {
	Name      string
	Metadata  string
	AgentName string
}

// CreateRoom creates the room and dispatches the named agent with the same metadata
func (c *Client) CreateRoom(ctx context.Context, params CreateRoomParams) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: params.Name},
		observability.Field{Key: "agent_name", Value: params.AgentName},
	)

	req := &livekit.CreateRoomRequest{
		Name:            params.Name,
		EmptyTimeout:    defaultEmptyTimeout,
		MaxParticipants: defaultMaxParticipants,
		Metadata:        params.Metadata,
	}
	if params.AgentName != "" {
		req.Agents = []*livekit.RoomAgentDispatch{{
			AgentName: params.AgentName,
			Metadata:  params.Metadata,
		}}
	}

	if _, err := c.rooms.CreateRoom(ctx, req); err != nil {
		c.logger.Error(ctx, "failed to create room", err)
		return fmt.Errorf("%w: create room %s: %v", ErrProvider, params.Name, err)
	}

	c.logger.Info(ctx, "room created")
	return nil
}

// DeleteRoom ends the call for every participant
func (c *Client) DeleteRoom(ctx context.Context, roomName string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "room_name", Value: roomName})

	if _, err := c.rooms.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: roomName}); err != nil {
		c.logger.Error(ctx, "failed to delete room", err)
		return fmt.Errorf("%w: delete room %s: %v", ErrProvider, roomName, err)
	}

	c.logger.Info(ctx, "room deleted")
	return nil
}

// DialParams describes an outbound SIP call into a room
type DialParams struct {
	TrunkID             string
	CallTo              string
	CallerID            string
	RoomName            string
	ParticipantIdentity string
	ParticipantName     string
}

// Dial asks the SIP bridge to call out and join the callee to the room. It
// returns once the call is placed, not when it is answered.
func (c *Client) Dial(ctx context.Context, params DialParams) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: params.RoomName},
		observability.Field{Key: "sip_trunk_id", Value: params.TrunkID},
	)

	info, err := c.sip.CreateSIPParticipant(ctx, &livekit.CreateSIPParticipantRequest{
		SipTrunkId:          params.TrunkID,
		SipCallTo:           params.CallTo,
		SipNumber:           params.CallerID,
		RoomName:            params.RoomName,
		ParticipantIdentity: params.ParticipantIdentity,
		ParticipantName:     params.ParticipantName,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to create SIP participant", err)
		return "", fmt.Errorf("%w: dial into %s: %v", ErrProvider, params.RoomName, err)
	}

	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "sip_call_id", Value: info.GetSipCallId()}), "outbound SIP call placed")
	return info.GetSipCallId(), nil
}

// RecordingParams configures a dual-channel audio recording uploaded to S3-compatible storage
type RecordingParams struct {
	RoomName  string
	AccessKey string
	Secret    string
	Region    string
	Endpoint  string
	Bucket    string
}

// RecordingPath is where egress writes the recording for a room; {time} is expanded by the egress service.
func RecordingPath(roomName string) string {
	return roomName + "/recording-{time}.ogg"
}

// StartRecording starts an audio-only room composite egress with the agent on
// the left channel and everyone else on the right.
func (c *Client) StartRecording(ctx context.Context, params RecordingParams) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: params.RoomName},
		observability.Field{Key: "bucket", Value: params.Bucket},
	)

	info, err := c.egress.StartRoomCompositeEgress(ctx, &livekit.RoomCompositeEgressRequest{
		RoomName:    params.RoomName,
		AudioOnly:   true,
		AudioMixing: livekit.AudioMixing_DUAL_CHANNEL_AGENT,
		FileOutputs: []*livekit.EncodedFileOutput{{
			FileType: livekit.EncodedFileType_OGG,
			Filepath: RecordingPath(params.RoomName),
			Output: &livekit.EncodedFileOutput_S3{
				S3: &livekit.S3Upload{
					AccessKey:      params.AccessKey,
					Secret:         params.Secret,
					Region:         params.Region,
					Endpoint:       params.Endpoint,
					Bucket:         params.Bucket,
					ForcePathStyle: true,
				},
			},
		}},
	})
	if err != nil {
		c.logger.Error(ctx, "failed to start dual-channel recording", err)
		return "", fmt.Errorf("%w: start egress for %s: %v", ErrProvider, params.RoomName, err)
	}

	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "egress_id", Value: info.GetEgressId()}), "dual-channel recording started")
	return info.GetEgressId(), nil
}

// StopRecording stops a running egress
func (c *Client) StopRecording(ctx context.Context, egressID string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "egress_id", Value: egressID})

	if _, err := c.egress.StopEgress(ctx, &livekit.StopEgressRequest{EgressId: egressID}); err != nil {
		c.logger.Error(ctx, "failed to stop egress", err)
		return fmt.Errorf("%w: stop egress %s: %v", ErrProvider, egressID, err)
	}

	c.logger.Info(ctx, "egress stopped")
	return nil
}

// TokenParams describes a participant access token
type TokenParams struct {
	RoomName string
	Identity string
	Name     string
	Metadata string
}

// ParticipantToken issues a signed token allowing the holder to join, publish
// and subscribe in exactly one room.
func (c *Client) ParticipantToken(params TokenParams) (string, error) {
	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     params.RoomName,
	}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)
	grant.SetCanPublishData(true)

	token, err := auth.NewAccessToken(c.apiKey, c.apiSecret).
		SetVideoGrant(grant).
		SetIdentity(params.Identity).
		SetName(params.Name).
		SetMetadata(params.Metadata).
		SetValidFor(tokenTTL).
		ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to sign participant token: %w", err)
	}
	return token, nil
}
