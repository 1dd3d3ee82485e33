package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const transcriptColumns = `room_name, phone_number, first_name, last_name, sip_call_id, recording_url, transcript, utterances, status, attempts, next_retry_at, last_error, lease_until, created_at, updated_at`

const sqlSaveTranscript = `
INSERT INTO transcripts (room_name, phone_number, first_name, last_name, sip_call_id, recording_url, transcript, utterances, status, attempts, next_retry_at, last_error, lease_until, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', 0, NULL, '', NULL, $9, $9)
ON CONFLICT (room_name) DO UPDATE
SET phone_number = EXCLUDED.phone_number,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    sip_call_id = EXCLUDED.sip_call_id,
    recording_url = EXCLUDED.recording_url,
    transcript = EXCLUDED.transcript,
    utterances = EXCLUDED.utterances,
    status = 'pending',
    attempts = 0,
    next_retry_at = NULL,
    last_error = '',
    lease_until = NULL,
    updated_at = EXCLUDED.updated_at
RETURNING ` + transcriptColumns

// SaveTranscript stores a transcript as pending delivery. Saving a room again
// replaces the transcript and resets its delivery state.
func (s *Store) SaveTranscript(ctx context.Context, rec TranscriptRecord) (TranscriptRecord, error) {
	var saved TranscriptRecord
	err := s.db.GetContext(ctx, &saved, sqlSaveTranscript,
		rec.RoomName,
		rec.PhoneNumber,
		rec.FirstName,
		rec.LastName,
		rec.SIPCallID,
		rec.RecordingURL,
		rec.Transcript,
		rec.Utterances,
		s.now().UTC())
	if err != nil {
		s.logger.Error(ctx, "failed to save transcript", err)
		return TranscriptRecord{}, fmt.Errorf("failed to save transcript: %w", err)
	}
	return saved, nil
}

const sqlGetTranscript = `SELECT ` + transcriptColumns + ` FROM transcripts WHERE room_name = $1`

func (s *Store) GetTranscript(ctx context.Context, room string) (TranscriptRecord, error) {
	var rec TranscriptRecord
	err := s.db.GetContext(ctx, &rec, sqlGetTranscript, room)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TranscriptRecord{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get transcript", err)
		return TranscriptRecord{}, fmt.Errorf("failed to get transcript: %w", err)
	}
	return rec, nil
}

const sqlRecordDeliveryAttempt = `
UPDATE transcripts
SET attempts = attempts + 1,
    status = $2,
    last_error = $3,
    next_retry_at = $4,
    lease_until = NULL,
    updated_at = $5
WHERE room_name = $1
`

// RecordDeliveryAttempt stores the outcome of one notification attempt
func (s *Store) RecordDeliveryAttempt(ctx context.Context, room string, attempt DeliveryAttempt) error {
	status := DeliveryFailed
	nextRetryAt := attempt.NextRetryAt
	lastError := attempt.Error
	if attempt.Delivered {
		status, nextRetryAt, lastError = DeliveryDelivered, nil, ""
	}

	res, err := s.db.ExecContext(ctx, sqlRecordDeliveryAttempt, room, status, lastError, nextRetryAt, s.now().UTC())
	if err != nil {
		s.logger.Error(ctx, "failed to record delivery attempt", err)
		return fmt.Errorf("failed to record delivery attempt: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlClaimDelivery = `
UPDATE transcripts
SET lease_until = $4
WHERE room_name = $1
  AND attempts = $2
  AND (lease_until IS NULL OR lease_until <= $3)
`

// ClaimDelivery leases the delivery of room until the given time. It succeeds
// only while the record still has the given number of attempts and no other
// sender holds an unexpired lease, so a record is never sent twice for the same attempt.
func (s *Store) ClaimDelivery(ctx context.Context, room string, attempts int, until time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqlClaimDelivery, room, attempts, s.now().UTC(), until.UTC())
	if err != nil {
		s.logger.Error(ctx, "failed to claim delivery", err)
		return false, fmt.Errorf("failed to claim delivery: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

const sqlListDueDeliveries = `SELECT ` + transcriptColumns + `
FROM transcripts
WHERE ((status = 'failed' AND next_retry_at IS NOT NULL AND next_retry_at <= $1)
    OR (status = 'pending' AND updated_at <= $2))
  AND (lease_until IS NULL OR lease_until <= $1)
ORDER BY COALESCE(next_retry_at, updated_at) ASC
LIMIT $3
`

// ListDueDeliveries returns failed deliveries whose retry time has passed and
// pending ones untouched since pendingBefore, such as after a crash between
// saving and sending.
func (s *Store) ListDueDeliveries(ctx context.Context, now, pendingBefore time.Time, limit int) ([]TranscriptRecord, error) {
	var recs []TranscriptRecord
	if err := s.db.SelectContext(ctx, &recs, sqlListDueDeliveries, now.UTC(), pendingBefore.UTC(), limit); err != nil {
		s.logger.Error(ctx, "failed to list due deliveries", err)
		return nil, fmt.Errorf("failed to list due deliveries: %w", err)
	}
	return recs, nil
}
