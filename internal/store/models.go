package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"livekit-henryk/internal/transcript"
)

// DeliveryStatus tracks the downstream webhook delivery of a transcript
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Utterances is stored as a JSONB array
type Utterances []transcript.Utterance

// Value implements the driver.Valuer interface for Utterances
func (u Utterances) Value() (driver.Value, error) {
	if u == nil {
		return "[]", nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for Utterances
func (u *Utterances) Scan(value interface{}) error {
	if value == nil {
		*u = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for Utterances")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*u = nil
		return nil
	}
	return json.Unmarshal(bytes, u)
}

// TranscriptRecord is a merged call transcript together with its delivery state.
type TranscriptRecord struct {
	RoomName     string         `db:"room_name" json:"room_name"`
	PhoneNumber  string         `db:"phone_number" json:"phone_number,omitempty"`
	FirstName    string         `db:"first_name" json:"first_name,omitempty"`
	LastName     string         `db:"last_name" json:"last_name,omitempty"`
	SIPCallID    string         `db:"sip_call_id" json:"sip_call_id,omitempty"`
	RecordingURL string         `db:"recording_url" json:"recording_url"`
	Transcript   string         `db:"transcript" json:"transcript"`
	Utterances   Utterances     `db:"utterances" json:"utterances"`
	Status       DeliveryStatus `db:"status" json:"status"`
	Attempts     int            `db:"attempts" json:"attempts"`
	NextRetryAt  *time.Time     `db:"next_retry_at" json:"next_retry_at,omitempty"`
	LastError    string         `db:"last_error" json:"last_error,omitempty"`
	LeaseUntil   *time.Time     `db:"lease_until" json:"lease_until,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// DeliveryAttempt is the outcome of one notification attempt
type DeliveryAttempt struct {
	Delivered bool
	Error     string
	// NextRetryAt is nil when no further attempt is scheduled.
	NextRetryAt *time.Time
}

// dueAt reports whether rec should be picked up by the retry worker: a failed
// delivery whose retry time has passed, or a pending one nobody sent since
// pendingBefore. Leased records are skipped.
func (rec TranscriptRecord) dueAt(now, pendingBefore time.Time) bool {
	if rec.LeaseUntil != nil && rec.LeaseUntil.After(now) {
		return false
	}
	switch rec.Status {
	case DeliveryFailed:
		return rec.NextRetryAt != nil && !rec.NextRetryAt.After(now)
	case DeliveryPending:
		return !rec.UpdatedAt.After(pendingBefore)
	default:
		return false
	}
}

// retryOrder is when a due record became due
func (rec TranscriptRecord) retryOrder() time.Time {
	if rec.NextRetryAt != nil {
		return *rec.NextRetryAt
	}
	return rec.UpdatedAt
}

// apply updates rec in place the same way the SQL store does
func (a DeliveryAttempt) apply(rec *TranscriptRecord, now time.Time) {
	rec.Attempts++
	rec.UpdatedAt = now
	rec.LeaseUntil = nil
	if a.Delivered {
		rec.Status = DeliveryDelivered
		rec.LastError = ""
		rec.NextRetryAt = nil
		return
	}
	rec.Status = DeliveryFailed
	rec.LastError = a.Error
	rec.NextRetryAt = a.NextRetryAt
}
