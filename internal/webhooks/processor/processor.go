// Package processor reacts to voice platform webhook events: it starts the
// dual-channel recording once a caller is live, tears rooms down when the caller
// hangs up, and hands finished recordings to the post-call pipeline.
package processor

import (
	"context"
	"errors"
	"fmt"

	"livekit-henryk/internal/calls"
	lkclient "livekit-henryk/internal/clients/livekit"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/store"
	"livekit-henryk/internal/voice/pipeline"

	"github.com/livekit/protocol/livekit"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

// ErrQueueFull is returned when a finished recording could not be queued. The
// dedupe claim is released so the platform's redelivery can try again.
var ErrQueueFull = errors.New("post-call queue is full")

// Dedupe key prefixes, one per side effect that must happen once per room
const (
	keyEgressStarted = "egress:"
	keyCallerLeft    = "left:"
	keyEgressEnded   = "egress_ended:"
)

// Recorder controls rooms and recordings on the voice platform
type Recorder interface {
	StartRecording(ctx context.Context, params lkclient.RecordingParams) (string, error)
	StopRecording(ctx context.Context, egressID string) error
	DeleteRoom(ctx context.Context, roomName string) error
}

// Marker claims a side effect for a room exactly once
type Marker interface {
	MarkOnce(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// CallStore persists call records across restarts
type CallStore interface {
	SaveCall(ctx context.Context, rec calls.Record) error
	GetCall(ctx context.Context, room string) (calls.Record, error)
}

// JobQueue accepts post-call jobs without blocking
type JobQueue interface {
	Submit(job pipeline.Job) error
}

// EventPublisher announces recording starts
type EventPublisher interface {
	RecordingStarted(ctx context.Context, room, egressID string)
}

// Dependencies groups what the processor needs. Events and Metrics are optional.
type Dependencies struct {
	Recorder Recorder
	Marker   Marker
	Calls    CallStore
	Registry *calls.Registry
	Queue    JobQueue
	Events   EventPublisher
	Metrics  *observability.Metrics
}

// WebhookProcessor routes platform events to their side effects
type WebhookProcessor struct {
	storage  config.StorageConfig
	recorder Recorder
	marker   Marker
	calls    CallStore
	registry *calls.Registry
	queue    JobQueue
	events   EventPublisher
	metrics  *observability.Metrics
	logger   *observability.Logger
}

// New creates a new WebhookProcessor. storage is where egress uploads recordings.
func New(storage config.StorageConfig, deps Dependencies, logger *observability.Logger) *WebhookProcessor {
	return &WebhookProcessor{
		storage:  storage,
		recorder: deps.Recorder,
		marker:   deps.Marker,
		calls:    deps.Calls,
		registry: deps.Registry,
		queue:    deps.Queue,
		events:   deps.Events,
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// HandleEvent applies one webhook event. Events may arrive in any order and
// more than once; every side effect is claimed through the marker first.
// Unrecognized events are accepted and ignored.
func (p *WebhookProcessor) HandleEvent(ctx context.Context, event *livekit.WebhookEvent) error {
	room := event.GetRoom().GetName()
	if room == "" {
		room = event.GetEgressInfo().GetRoomName()
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event", Value: event.GetEvent()},
		observability.Field{Key: "event_id", Value: event.GetId()},
		observability.Field{Key: "room_name", Value: room},
	)
	p.metrics.WebhookEvent(event.GetEvent())

	switch event.GetEvent() {
	case lkclient.EventParticipantJoined:
		if lkclient.IsAnsweredCaller(event.GetParticipant()) {
			return p.startRecording(ctx, room, event)
		}
	case lkclient.EventTrackPublished:
		// SIP callers usually join before answering; their first audio track means the call is live
		if event.GetTrack().GetType() == livekit.TrackType_AUDIO && lkclient.IsAnsweredCaller(event.GetParticipant()) {
			return p.startRecording(ctx, room, event)
		}
	case lkclient.EventParticipantLeft:
		participant := event.GetParticipant()
		if participant != nil && !lkclient.IsAgent(participant) {
			return p.callerLeft(ctx, room)
		}
	case lkclient.EventEgressEnded:
		return p.egressEnded(ctx, event.GetEgressInfo())
	case lkclient.EventRoomFinished:
		p.roomFinished(ctx, room)
	default:
		p.logger.Debug(ctx, "ignoring webhook event")
	}
	return nil
}

// claim returns false when another delivery of the same event already ran.
func (p *WebhookProcessor) claim(ctx context.Context, key, kind string) (bool, error) {
	claimed, err := p.marker.MarkOnce(ctx, key)
	if err != nil {
		p.logger.Error(ctx, "failed to claim dedupe marker", err)
		return false, fmt.Errorf("failed to claim %s: %w", key, err)
	}
	if !claimed {
		p.metrics.DuplicateEvent(kind)
		p.logger.Info(ctx, "duplicate "+kind+" event ignored")
	}
	return claimed, nil
}

func (p *WebhookProcessor) release(ctx context.Context, key string) {
	if err := p.marker.Release(ctx, key); err != nil {
		p.logger.Warn(ctx, "failed to release dedupe marker "+key+": "+err.Error())
	}
}

func (p *WebhookProcessor) startRecording(ctx context.Context, room string, event *livekit.WebhookEvent) error {
	key := keyEgressStarted + room
	claimed, err := p.claim(ctx, key, "egress_started")
	if err != nil || !claimed {
		return err
	}

	egressID, err := p.recorder.StartRecording(ctx, lkclient.RecordingParams{
		RoomName:  room,
		AccessKey: p.storage.AccessKey,
		Secret:    p.storage.Secret,
		Region:    p.storage.Region,
		Endpoint:  p.storage.Endpoint,
		Bucket:    p.storage.Bucket,
	})
	if err != nil {
		p.release(ctx, key)
		return err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "egress_id", Value: egressID})

	rec := p.lookup(ctx, room, event.GetRoom().GetMetadata())
	rec.EgressID = egressID
	if participant := event.GetParticipant(); participant.GetKind() == livekit.ParticipantInfo_SIP {
		attrs := participant.GetAttributes()
		if rec.SIPCallID == "" {
			rec.SIPCallID = attrs[lkclient.SIPCallIDAttribute]
		}
		if rec.PhoneNumber == "" {
			rec.PhoneNumber = attrs[lkclient.SIPPhoneNumberAttribute]
		}
	}

	if p.registry != nil && !p.registry.Update(room, func(r *calls.Record) { *r = rec }) {
		p.registry.Put(rec)
	}
	if err := p.calls.SaveCall(ctx, rec); err != nil {
		// the registry still carries the call for this process
		p.logger.Error(ctx, "failed to persist call record", err)
	}
	if p.events != nil {
		p.events.RecordingStarted(ctx, room, egressID)
	}

	p.logger.Info(ctx, "recording started for "+string(rec.Kind)+" call")
	return nil
}

func (p *WebhookProcessor) callerLeft(ctx context.Context, room string) error {
	claimed, err := p.claim(ctx, keyCallerLeft+room, "participant_left")
	if err != nil || !claimed {
		return err
	}

	rec := p.lookup(ctx, room, "")
	if rec.EgressID != "" {
		// stopping finalizes the file and triggers egress_ended
		if err := p.recorder.StopRecording(ctx, rec.EgressID); err != nil {
			p.logger.Warn(ctx, "failed to stop recording: "+err.Error())
		}
	}
	if err := p.recorder.DeleteRoom(ctx, room); err != nil {
		p.logger.Warn(ctx, "failed to delete room: "+err.Error())
	}

	p.logger.Info(ctx, "caller left, room closed")
	return nil
}

func (p *WebhookProcessor) egressEnded(ctx context.Context, info *livekit.EgressInfo) error {
	room := info.GetRoomName()
	ctx = observability.WithFields(ctx, observability.Field{Key: "egress_id", Value: info.GetEgressId()})

	if info.GetStatus() != livekit.EgressStatus_EGRESS_COMPLETE {
		p.logger.Warn(ctx, fmt.Sprintf("recording ended with status %s: %s", info.GetStatus(), info.GetError()))
		return nil
	}
	location := recordingLocation(info)
	if room == "" || location == "" {
		p.logger.Warn(ctx, "recording finished without a room or file location")
		return nil
	}

	key := keyEgressEnded + room
	claimed, err := p.claim(ctx, key, "egress_ended")
	if err != nil || !claimed {
		return err
	}

	job := pipeline.Job{
		Call:     p.lookup(ctx, room, ""),
		EgressID: info.GetEgressId(),
		Location: location,
	}
	if err := p.queue.Submit(job); err != nil {
		p.release(ctx, key)
		p.logger.Error(ctx, "failed to queue post-call job", err)
		return fmt.Errorf("%w: %v", ErrQueueFull, err)
	}

	p.logger.Info(ctx, "post-call job queued")
	return nil
}

func (p *WebhookProcessor) roomFinished(ctx context.Context, room string) {
	if p.registry == nil {
		return
	}
	// rooms that never recorded have no pipeline to clean up after them
	if rec, ok := p.registry.Get(room); ok && rec.EgressID == "" {
		p.registry.Delete(room)
	}
	p.logger.Info(ctx, "room finished")
}

// lookup finds the call for room in the registry, then the store, and finally
// derives one from the room name and metadata.
func (p *WebhookProcessor) lookup(ctx context.Context, room, metadata string) calls.Record {
	if p.registry != nil {
		if rec, ok := p.registry.Get(room); ok {
			return rec
		}
	}
	rec, err := p.calls.GetCall(ctx, room)
	if err == nil {
		return rec
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Warn(ctx, "failed to load call record: "+err.Error())
	}
	return calls.FromRoomMetadata(room, metadata)
}

func recordingLocation(info *livekit.EgressInfo) string {
	for _, f := range info.GetFileResults() {
		if f.GetLocation() != "" {
			return f.GetLocation()
		}
		if f.GetFilename() != "" {
			return f.GetFilename()
		}
	}
	return ""
}
