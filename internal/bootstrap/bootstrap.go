package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"livekit-henryk/internal/calls"
	"livekit-henryk/internal/clients/assemblyai"
	kafkaClient "livekit-henryk/internal/clients/kafka"
	"livekit-henryk/internal/clients/livekit"
	"livekit-henryk/internal/clients/mail"
	"livekit-henryk/internal/clients/openai"
	redisClient "livekit-henryk/internal/clients/redis"
	"livekit-henryk/internal/clients/storage"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/dedupe"
	"livekit-henryk/internal/events"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/prompt"
	"livekit-henryk/internal/store"
	"livekit-henryk/internal/transcript"
	"livekit-henryk/internal/voice/audio"
	"livekit-henryk/internal/voice/pipeline"
	voiceCallHandler "livekit-henryk/internal/voicecall/handler"
	voiceCallProcessor "livekit-henryk/internal/voicecall/processor"
	webhookHandler "livekit-henryk/internal/webhooks/handler"
	webhookProcessor "livekit-henryk/internal/webhooks/processor"
	webhookService "livekit-henryk/internal/webhooks/service"
	webhookWorker "livekit-henryk/internal/webhooks/worker"
	"livekit-henryk/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the persistence both backends provide: Postgres when a database is
// configured, otherwise an append-only JSONL file.
type Store interface {
	SaveCall(ctx context.Context, rec calls.Record) error
	GetCall(ctx context.Context, room string) (calls.Record, error)
	SaveTranscript(ctx context.Context, rec store.TranscriptRecord) (store.TranscriptRecord, error)
	GetTranscript(ctx context.Context, room string) (store.TranscriptRecord, error)
	RecordDeliveryAttempt(ctx context.Context, room string, attempt store.DeliveryAttempt) error
	ClaimDelivery(ctx context.Context, room string, attempts int, until time.Time) (bool, error)
	ListDueDeliveries(ctx context.Context, now, pendingBefore time.Time, limit int) ([]store.TranscriptRecord, error)
	Close() error
}

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store          Store
	Logger         *observability.Logger
	Metrics        *observability.Metrics
	MetricsHandler http.Handler

	// Handlers
	VoiceCallHandler *voiceCallHandler.Handler
	WebhookHandler   *webhookHandler.Handler

	// Background work
	Pipeline       *workers.Pool[pipeline.Job]
	WebhookService *webhookService.WebhookService
	WebhookWorker  *webhookWorker.WebhookWorker

	// Optional clients (for cleanup)
	KafkaProducer *kafkaClient.Producer
	RedisClient   *redisClient.Client
}

// OpenStore connects to Postgres and applies migrations, or opens the JSONL
// transcript log when no database is configured.
func OpenStore(ctx context.Context, cfg *config.Config, logger *observability.Logger) (Store, error) {
	if !cfg.Database.Enabled() {
		logger.Info(ctx, "no database configured, using transcript log "+cfg.Pipeline.TranscriptLog)
		fileStore, err := store.OpenFile(cfg.Pipeline.TranscriptLog, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open transcript log: %w", err)
		}
		return fileStore, nil
	}

	db, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewTranscriber returns the configured speech-to-text provider.
func NewTranscriber(cfg *config.Config, logger *observability.Logger) (transcript.Transcriber, error) {
	switch cfg.Transcription.Provider {
	case "assemblyai":
		return assemblyai.NewClient(cfg.Transcription, cfg.Pipeline, logger), nil
	case "openai":
		client, err := openai.NewTranscriptionClient(cfg.Transcription, cfg.Pipeline, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create transcription client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider %q", cfg.Transcription.Provider)
	}
}

// NewWebhookService builds the transcript notifier with its optional alert mail and events.
func NewWebhookService(cfg *config.Config, st Store, publisher *events.Publisher, metrics *observability.Metrics, logger *observability.Logger) (*webhookService.WebhookService, error) {
	alerter, err := mail.NewAlerter(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert mailer: %w", err)
	}
	return webhookService.New(cfg.Webhook, st, alerter, publisher, metrics, logger), nil
}

// NewPublisher returns an event publisher that drops events when Kafka is not configured.
func NewPublisher(cfg *config.Config, logger *observability.Logger) (*events.Publisher, *kafkaClient.Producer) {
	if len(cfg.Kafka.BrokerList()) == 0 {
		return events.NewPublisher(nil, logger), nil
	}
	producer := kafkaClient.NewProducer(cfg.Kafka, logger)
	return events.NewPublisher(producer, logger), producer
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = observability.NewMetrics(promRegistry)
	deps.MetricsHandler = promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})

	var err error
	deps.Store, err = OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Dedupe markers live in Redis when configured so replicas agree
	var marker dedupe.Marker = dedupe.NewMemoryMarker(cfg.Pipeline.DedupeTTL)
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}
	if deps.RedisClient != nil {
		marker = dedupe.NewRedisMarker(deps.RedisClient, cfg.Pipeline.DedupeTTL)
	}

	var publisher *events.Publisher
	publisher, deps.KafkaProducer = NewPublisher(cfg, logger)

	transcriber, err := NewTranscriber(cfg, logger)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}

	deps.WebhookService, err = NewWebhookService(cfg, deps.Store, publisher, deps.Metrics, logger)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}
	deps.WebhookWorker = webhookWorker.New(deps.WebhookService, logger, cfg.Webhook.RetryInterval)

	// Initialize clients
	livekitClient := livekit.NewClient(cfg.LiveKit, logger)
	storageClient := storage.NewClient(cfg.Storage, cfg.Pipeline, logger)
	callRegistry := calls.NewRegistry()

	// Post-call pipeline on a bounded worker pool
	postCall := pipeline.New(pipeline.Dependencies{
		Recordings:  storageClient,
		Splitter:    audio.NewSplitter(cfg.Pipeline.FFmpegPath, logger),
		Transcriber: transcriber,
		Store:       deps.Store,
		Notifier:    deps.WebhookService,
		Events:      publisher,
		Registry:    callRegistry,
		Metrics:     deps.Metrics,
	}, logger)
	deps.Pipeline = workers.NewWorkerPool[pipeline.Job](workers.WorkerPoolConfig{
		NumWorkers:   cfg.Pipeline.Workers,
		QueueSize:    cfg.Pipeline.QueueSize,
		JobTimeout:   cfg.Pipeline.Timeout,
		DrainTimeout: cfg.Pipeline.Timeout,
	}, postCall, deps.Metrics, logger)

	// Initialize voice call processor and handler
	voiceCallProc := voiceCallProcessor.NewVoiceCallProcessor(cfg.LiveKit, cfg.SIP, cfg.Agent, voiceCallProcessor.Dependencies{
		Platform: livekitClient,
		Prompts:  prompt.NewLoader(cfg.Agent.PromptPath, logger),
		Calls:    deps.Store,
		Registry: callRegistry,
		Events:   publisher,
		Metrics:  deps.Metrics,
	}, logger)
	deps.VoiceCallHandler = voiceCallHandler.New(voiceCallProc, deps.Store, deps.WebhookService, cfg.Twilio, logger)

	// Initialize platform webhook processor and handler
	webhookProc := webhookProcessor.New(cfg.Storage, webhookProcessor.Dependencies{
		Recorder: livekitClient,
		Marker:   marker,
		Calls:    deps.Store,
		Registry: callRegistry,
		Queue:    deps.Pipeline,
		Events:   publisher,
		Metrics:  deps.Metrics,
	}, logger)
	receiver := livekit.NewWebhookReceiver(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.SkipWebhookVerify)
	deps.WebhookHandler = webhookHandler.New(receiver, webhookProc, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.KafkaProducer != nil {
		d.KafkaProducer.Close()
	}
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
	if d.Store != nil {
		d.Store.Close()
	}
}
