// Package pipeline turns a finished call recording into a delivered transcript:
// download, split channels, transcribe both sides, merge, persist and notify.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"livekit-henryk/internal/calls"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/store"
	"livekit-henryk/internal/transcript"
	"livekit-henryk/internal/voice/audio"

	"golang.org/x/sync/errgroup"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=pipeline.go -destination=mocks_test.go -package=pipeline

// Stage names used in logs and metrics
const (
	StageDownload   = "download"
	StageSplit      = "split"
	StageTranscribe = "transcribe"
	StagePersist    = "persist"
	StageNotify     = "notify"
)

// Job is one finished recording to process
type Job struct {
	Call     calls.Record
	EgressID string
	// Location is the egress file location or object key.
	Location string
}

// RecordingStore fetches recordings from object storage
type RecordingStore interface {
	KeyFromLocation(location string) string
	Download(ctx context.Context, key string) (string, error)
	PublicURL(ctx context.Context, key string) (string, error)
}

// Splitter splits a stereo recording into agent and human files
type Splitter interface {
	Split(ctx context.Context, stereoPath string) (audio.Channels, error)
}

// TranscriptStore persists merged transcripts
type TranscriptStore interface {
	SaveTranscript(ctx context.Context, rec store.TranscriptRecord) (store.TranscriptRecord, error)
}

// Notifier delivers a stored transcript downstream
type Notifier interface {
	Deliver(ctx context.Context, rec store.TranscriptRecord) error
}

// EventPublisher announces finished transcripts
type EventPublisher interface {
	TranscriptReady(ctx context.Context, room, recordingURL string, utterances int)
}

// Pipeline runs post-call jobs. It is safe for concurrent use; jobs share no state.
type Pipeline struct {
	recordings  RecordingStore
	splitter    Splitter
	transcriber transcript.Transcriber
	store       TranscriptStore
	notifier    Notifier
	events      EventPublisher
	registry    *calls.Registry
	metrics     *observability.Metrics
	logger      *observability.Logger
}

// Dependencies groups what a Pipeline needs. Events, Registry and Metrics are optional.
type Dependencies struct {
	Recordings  RecordingStore
	Splitter    Splitter
	Transcriber transcript.Transcriber
	Store       TranscriptStore
	Notifier    Notifier
	Events      EventPublisher
	Registry    *calls.Registry
	Metrics     *observability.Metrics
}

func New(deps Dependencies, logger *observability.Logger) *Pipeline {
	return &Pipeline{
		recordings:  deps.Recordings,
		splitter:    deps.Splitter,
		transcriber: deps.Transcriber,
		store:       deps.Store,
		notifier:    deps.Notifier,
		events:      deps.Events,
		registry:    deps.Registry,
		metrics:     deps.Metrics,
		logger:      logger,
	}
}

// Name returns the processor name for logging and metrics.
func (p *Pipeline) Name() string {
	return "post_call"
}

// Process runs one job to completion. A failure in any stage up to
// transcription aborts the job; persistence and notification failures are
// logged and left to the delivery retry worker.
func (p *Pipeline) Process(ctx context.Context, job Job) (err error) {
	room := job.Call.RoomName
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: room},
		observability.Field{Key: "egress_id", Value: job.EgressID},
	)
	start := time.Now()
	result := "success"

	defer func() {
		if p.registry != nil {
			p.registry.Delete(room)
		}
		p.metrics.PipelineJob(result)
		p.logger.Metrics(ctx,
			observability.MetricField{Key: "pipeline_result", Value: result},
			observability.MetricField{Key: "pipeline_ms", Value: time.Since(start).Milliseconds()},
		)
	}()

	key := p.recordings.KeyFromLocation(job.Location)

	stageStart := time.Now()
	local, err := p.recordings.Download(ctx, key)
	p.metrics.ObserveStage(StageDownload, stageStart, err)
	if err != nil {
		result = StageDownload
		p.logger.Error(ctx, "post-call pipeline aborted: recording download failed", err)
		return fmt.Errorf("%s: %w", StageDownload, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(filepath.Dir(local)); rmErr != nil {
			p.logger.Warn(ctx, "failed to remove scratch dir: "+rmErr.Error())
		}
	}()

	stageStart = time.Now()
	channels, err := p.splitter.Split(ctx, local)
	p.metrics.ObserveStage(StageSplit, stageStart, err)
	if err != nil {
		result = StageSplit
		p.logger.Error(ctx, "post-call pipeline aborted: channel split failed", err)
		return fmt.Errorf("%s: %w", StageSplit, err)
	}

	stageStart = time.Now()
	merged, err := p.transcribe(ctx, channels)
	p.metrics.ObserveStage(StageTranscribe, stageStart, err)
	if err != nil {
		result = StageTranscribe
		p.logger.Error(ctx, "post-call pipeline aborted: transcription failed", err)
		return fmt.Errorf("%s: %w", StageTranscribe, err)
	}

	recordingURL, err := p.recordings.PublicURL(ctx, key)
	if err != nil {
		// delivered without a link
		p.logger.Error(ctx, "failed to build recording URL", err)
	}

	rec := store.TranscriptRecord{
		RoomName:     room,
		PhoneNumber:  job.Call.PhoneNumber,
		FirstName:    job.Call.FirstName,
		LastName:     job.Call.LastName,
		SIPCallID:    job.Call.SIPCallID,
		RecordingURL: recordingURL,
		Transcript:   transcript.Render(merged),
		Utterances:   store.Utterances(merged),
	}

	stageStart = time.Now()
	saved, err := p.store.SaveTranscript(ctx, rec)
	p.metrics.ObserveStage(StagePersist, stageStart, err)
	if err != nil {
		result = StagePersist
		p.logger.Error(ctx, "failed to persist transcript, notifying anyway", err)
	} else {
		rec = saved
	}

	if p.events != nil {
		p.events.TranscriptReady(ctx, room, recordingURL, len(merged))
	}

	stageStart = time.Now()
	err = p.notifier.Deliver(ctx, rec)
	p.metrics.ObserveStage(StageNotify, stageStart, err)
	if err != nil {
		if result == "success" {
			result = StageNotify
		}
		p.logger.Error(ctx, "transcript notification failed", err)
		return fmt.Errorf("%s: %w", StageNotify, err)
	}

	p.logger.Info(ctx, fmt.Sprintf("post-call pipeline finished with %d utterances", len(merged)))
	return nil
}

// transcribe runs both channels concurrently and merges once both are done.
func (p *Pipeline) transcribe(ctx context.Context, channels audio.Channels) ([]transcript.Utterance, error) {
	var agent, human []transcript.Utterance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		segments, err := p.transcriber.Transcribe(gctx, channels.Agent)
		if err != nil {
			return fmt.Errorf("agent channel: %w", err)
		}
		agent = transcript.Tag(transcript.SpeakerAgent, segments)
		return nil
	})
	g.Go(func() error {
		segments, err := p.transcriber.Transcribe(gctx, channels.Human)
		if err != nil {
			return fmt.Errorf("human channel: %w", err)
		}
		human = transcript.Tag(transcript.SpeakerHuman, segments)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return transcript.Merge(agent, human), nil
}
