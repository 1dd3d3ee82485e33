package events

import (
	"context"
	"time"

	"livekit-henryk/internal/calls"
	"livekit-henryk/internal/clients/kafka"
	"livekit-henryk/internal/observability"

	"github.com/google/uuid"
)

const (
	TypeCallCreated        = "call.created"
	TypeRecordingStarted   = "call.recording_started"
	TypeTranscriptReady    = "call.transcript_ready"
	TypeNotificationFailed = "call.notification_failed"
)

// Producer is the part of the Kafka producer the publisher needs
type Producer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// Publisher emits call lifecycle events. A publisher without a producer drops them.
// Publishing is best effort: failures are logged, never returned to the call path.
type Publisher struct {
	producer Producer
	logger   *observability.Logger
	now      func() time.Time
}

func NewPublisher(producer Producer, logger *observability.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger, now: time.Now}
}

func (p *Publisher) CallCreated(ctx context.Context, rec calls.Record) {
	p.publish(ctx, TypeCallCreated, rec.RoomName, map[string]interface{}{
		"kind":         string(rec.Kind),
		"phone_number": rec.PhoneNumber,
		"sip_call_id":  rec.SIPCallID,
	})
}

func (p *Publisher) RecordingStarted(ctx context.Context, room, egressID string) {
	p.publish(ctx, TypeRecordingStarted, room, map[string]interface{}{
		"egress_id": egressID,
	})
}

func (p *Publisher) TranscriptReady(ctx context.Context, room, recordingURL string, utterances int) {
	p.publish(ctx, TypeTranscriptReady, room, map[string]interface{}{
		"recording_url": recordingURL,
		"utterances":    utterances,
	})
}

func (p *Publisher) NotificationFailed(ctx context.Context, room string, attempts int, cause error) {
	data := map[string]interface{}{"attempts": attempts}
	if cause != nil {
		data["error"] = cause.Error()
	}
	p.publish(ctx, TypeNotificationFailed, room, data)
}

func (p *Publisher) publish(ctx context.Context, eventType, room string, data map[string]interface{}) {
	if p == nil || p.producer == nil {
		return
	}
	event := kafka.EventMessage{
		ID:        uuid.New().String(),
		Type:      eventType,
		RoomName:  room,
		Data:      data,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	}
	if err := p.producer.PublishEvent(ctx, event); err != nil {
		p.logger.Warn(ctx, "failed to publish "+eventType+" event: "+err.Error())
	}
}
