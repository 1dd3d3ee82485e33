package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"livekit-henryk/internal/calls"
)

const sqlSaveCall = `
INSERT INTO call_records (room_name, kind, phone_number, first_name, last_name, sip_call_id, egress_id, created_at)
VALUES (:room_name, :kind, :phone_number, :first_name, :last_name, :sip_call_id, :egress_id, :created_at)
ON CONFLICT (room_name) DO UPDATE
SET sip_call_id = EXCLUDED.sip_call_id,
    egress_id = CASE WHEN EXCLUDED.egress_id <> '' THEN EXCLUDED.egress_id ELSE call_records.egress_id END
`

// SaveCall inserts a call or refreshes its SIP and egress ids
func (s *Store) SaveCall(ctx context.Context, rec calls.Record) error {
	if _, err := s.db.NamedExecContext(ctx, sqlSaveCall, rec); err != nil {
		s.logger.Error(ctx, "failed to save call record", err)
		return fmt.Errorf("failed to save call record: %w", err)
	}
	return nil
}

const sqlGetCall = `
SELECT room_name, kind, phone_number, first_name, last_name, sip_call_id, egress_id, created_at
FROM call_records
WHERE room_name = $1
`

func (s *Store) GetCall(ctx context.Context, room string) (calls.Record, error) {
	var rec calls.Record
	err := s.db.GetContext(ctx, &rec, sqlGetCall, room)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calls.Record{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get call record", err)
		return calls.Record{}, fmt.Errorf("failed to get call record: %w", err)
	}
	return rec, nil
}
