package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"livekit-henryk/internal/clients/mail"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"
	"livekit-henryk/internal/store"
	"livekit-henryk/internal/transcript"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=mocks_test.go -package=service

// ErrWebhook is returned when the downstream endpoint did not accept a notification.
var ErrWebhook = errors.New("webhook delivery failed")

// ErrDeliveryInFlight is returned when another sender holds the delivery lease
// for the same attempt.
var ErrDeliveryInFlight = errors.New("notification already being delivered")

// DeliveryStore defines the persistence operations the notifier needs
type DeliveryStore interface {
	GetTranscript(ctx context.Context, room string) (store.TranscriptRecord, error)
	RecordDeliveryAttempt(ctx context.Context, room string, attempt store.DeliveryAttempt) error
	// ClaimDelivery leases the record for one send. It reports false when the
	// attempt count moved on or an unexpired lease is held.
	ClaimDelivery(ctx context.Context, room string, attempts int, until time.Time) (bool, error)
	ListDueDeliveries(ctx context.Context, now, pendingBefore time.Time, limit int) ([]store.TranscriptRecord, error)
}

// Alerter is told about notifications that will not be retried again
type Alerter interface {
	NotificationLost(ctx context.Context, n mail.LostNotification) error
}

// EventPublisher announces failed notifications to other systems
type EventPublisher interface {
	NotificationFailed(ctx context.Context, room string, attempts int, cause error)
}

// Payload is the JSON body POSTed to the downstream webhook
type Payload struct {
	RoomName             string                 `json:"room_name"`
	PhoneNumber          string                 `json:"phone_number"`
	FirstName            string                 `json:"first_name"`
	LastName             string                 `json:"last_name,omitempty"`
	SIPCallID            string                 `json:"sip_call_id,omitempty"`
	RecordingURL         string                 `json:"recording_url"`
	Transcript           string                 `json:"transcript"`
	TranscriptStructured []transcript.Utterance `json:"transcript_structured"`
}

func PayloadFromRecord(rec store.TranscriptRecord) Payload {
	structured := []transcript.Utterance(rec.Utterances)
	if structured == nil {
		structured = []transcript.Utterance{}
	}
	return Payload{
		RoomName:             rec.RoomName,
		PhoneNumber:          rec.PhoneNumber,
		FirstName:            rec.FirstName,
		LastName:             rec.LastName,
		SIPCallID:            rec.SIPCallID,
		RecordingURL:         rec.RecordingURL,
		Transcript:           rec.Transcript,
		TranscriptStructured: structured,
	}
}

// WebhookService delivers transcripts to the downstream webhook and schedules retries
type WebhookService struct {
	store        DeliveryStore
	alerter      Alerter
	events       EventPublisher
	metrics      *observability.Metrics
	url          string
	secret       string
	maxAttempts  int
	leaseFor     time.Duration
	pendingGrace time.Duration
	logger       *observability.Logger
	httpClient   *http.Client
	now          func() time.Time
}

// New creates a new WebhookService. alerter, events and metrics may be nil.
func New(cfg config.WebhookConfig, store DeliveryStore, alerter Alerter, events EventPublisher, metrics *observability.Metrics, logger *observability.Logger) *WebhookService {
	// the lease must outlive one request
	leaseFor := time.Minute
	if cfg.Timeout > 0 {
		leaseFor = cfg.Timeout + 30*time.Second
	}
	return &WebhookService{
		store:        store,
		alerter:      alerter,
		events:       events,
		metrics:      metrics,
		url:          cfg.URL,
		secret:       cfg.Secret,
		maxAttempts:  cfg.MaxAttempts,
		leaseFor:     leaseFor,
		pendingGrace: cfg.PendingGrace,
		logger:       logger,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		now: time.Now,
	}
}

// Deliver sends rec and records the outcome. Failures are scheduled for retry
// until the attempt budget runs out; the returned error wraps ErrWebhook.
// rec.Attempts must match the stored count, otherwise ErrDeliveryInFlight is
// returned without sending.
func (s *WebhookService) Deliver(ctx context.Context, rec store.TranscriptRecord) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "room_name", Value: rec.RoomName},
		observability.Field{Key: "attempt", Value: rec.Attempts + 1},
	)

	claimed, err := s.store.ClaimDelivery(ctx, rec.RoomName, rec.Attempts, s.now().Add(s.leaseFor))
	if err != nil {
		s.logger.Error(ctx, "failed to claim delivery", err)
		return fmt.Errorf("failed to claim delivery: %w", err)
	}
	if !claimed {
		s.logger.Info(ctx, "delivery already in flight, skipping")
		return ErrDeliveryInFlight
	}

	payloadBytes, err := json.Marshal(PayloadFromRecord(rec))
	if err != nil {
		s.logger.Error(ctx, "failed to marshal payload", err)
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	status, durationMs, deliveryErr := s.send(ctx, payloadBytes)
	if deliveryErr == nil {
		if err := s.store.RecordDeliveryAttempt(ctx, rec.RoomName, store.DeliveryAttempt{Delivered: true}); err != nil {
			s.logger.Error(ctx, "failed to record delivery", err)
		}
		s.metrics.NotificationSent("delivered")
		s.logger.Metrics(ctx,
			observability.MetricField{Key: "webhook_status", Value: status},
			observability.MetricField{Key: "duration_ms", Value: durationMs},
		)
		s.logger.Info(ctx, "webhook delivered successfully")
		return nil
	}

	attempts := rec.Attempts + 1
	var nextRetryAt *time.Time
	if attempts < s.maxAttempts {
		next := s.calculateNextRetry(attempts)
		nextRetryAt = &next
	}

	if err := s.store.RecordDeliveryAttempt(ctx, rec.RoomName, store.DeliveryAttempt{
		Error:       deliveryErr.Error(),
		NextRetryAt: nextRetryAt,
	}); err != nil {
		s.logger.Error(ctx, "failed to record delivery attempt", err)
	}

	if nextRetryAt != nil {
		s.metrics.NotificationSent("retrying")
		s.logger.InfoWithError(ctx, fmt.Sprintf("webhook delivery failed, will retry at %s", nextRetryAt.Format(time.RFC3339)), deliveryErr)
	} else {
		s.metrics.NotificationSent("gave_up")
		s.logger.Error(ctx, "webhook delivery failed, no more retries", deliveryErr)
		s.giveUp(ctx, rec, attempts, deliveryErr)
	}

	return deliveryErr
}

func (s *WebhookService) giveUp(ctx context.Context, rec store.TranscriptRecord, attempts int, cause error) {
	if s.events != nil {
		s.events.NotificationFailed(ctx, rec.RoomName, attempts, cause)
	}
	if s.alerter == nil {
		return
	}
	err := s.alerter.NotificationLost(ctx, mail.LostNotification{
		RoomName:    rec.RoomName,
		PhoneNumber: rec.PhoneNumber,
		Attempts:    attempts,
		LastError:   cause.Error(),
	})
	if err != nil {
		s.logger.Error(ctx, "failed to send lost notification alert", err)
	}
}

// send performs the HTTP request. Any non-2xx answer is an ErrWebhook.
func (s *WebhookService) send(ctx context.Context, payloadBytes []byte) (status int, durationMs int64, err error) {
	startTime := s.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payloadBytes))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to create request: %v", ErrWebhook, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "livekit-henryk-webhook/1.0")
	if s.secret != "" {
		req.Header.Set("X-Webhook-Signature", generateSignature(s.secret, payloadBytes, startTime.Unix()))
	}

	resp, err := s.httpClient.Do(req)
	durationMs = time.Since(startTime).Milliseconds()
	if err != nil {
		return 0, durationMs, fmt.Errorf("%w: failed to send request: %v", ErrWebhook, err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 10240))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, durationMs, fmt.Errorf("%w: received non-2xx status code %d: %s", ErrWebhook, resp.StatusCode, truncate(string(body), 200))
	}
	return resp.StatusCode, durationMs, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// generateSignature signs the payload as t=<timestamp>,v1=<hex hmac-sha256 of "timestamp.payload">
func generateSignature(secret string, payload []byte, timestamp int64) string {
	signedPayload := fmt.Sprintf("%d.%s", timestamp, string(payload))

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("t=%d,v1=%s", timestamp, signature)
}

// calculateNextRetry returns when to retry after the given number of attempts.
// Retry schedule: 2s, 10s, 1min, 10min
func (s *WebhookService) calculateNextRetry(attempts int) time.Time {
	var delay time.Duration

	switch attempts {
	case 1:
		delay = 2 * time.Second
	case 2:
		delay = 10 * time.Second
	case 3:
		delay = 1 * time.Minute
	default:
		delay = 10 * time.Minute
	}

	return s.now().Add(delay)
}

// RetryDueDeliveries resends failed notifications whose retry time has passed,
// plus pending ones older than the grace period, and returns how many were delivered.
func (s *WebhookService) RetryDueDeliveries(ctx context.Context, limit int) (int, error) {
	now := s.now()
	due, err := s.store.ListDueDeliveries(ctx, now, now.Add(-s.pendingGrace), limit)
	if err != nil {
		s.logger.Error(ctx, "failed to get pending deliveries", err)
		return 0, fmt.Errorf("failed to get pending deliveries: %w", err)
	}

	if len(due) > 0 {
		s.logger.Info(ctx, fmt.Sprintf("found %d pending deliveries to retry", len(due)))
	}

	delivered := 0
	for _, rec := range due {
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}
		if err := s.Deliver(ctx, rec); err == nil {
			delivered++
		}
	}
	return delivered, nil
}

// Resend delivers the stored transcript for room right away, whatever its state.
func (s *WebhookService) Resend(ctx context.Context, room string) error {
	rec, err := s.store.GetTranscript(ctx, room)
	if err != nil {
		return err
	}
	return s.Deliver(ctx, rec)
}
