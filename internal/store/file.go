package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"livekit-henryk/internal/calls"
	"livekit-henryk/internal/observability"
)

// fileEntry is one line of the append-only log. Later lines for the same room win.
type fileEntry struct {
	Call       *calls.Record     `json:"call,omitempty"`
	Transcript *TranscriptRecord `json:"transcript,omitempty"`
}

// FileStore keeps calls and transcripts in a JSON lines file. It is used when
// no database is configured and is meant for a single instance.
type FileStore struct {
	mu          sync.Mutex
	f           *os.File
	calls       map[string]calls.Record
	transcripts map[string]TranscriptRecord
	logger      *observability.Logger
	now         func() time.Time
}

// OpenFile loads an existing log, or creates it.
func OpenFile(path string, logger *observability.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript log: %w", err)
	}

	s := &FileStore{
		f:           f,
		calls:       make(map[string]calls.Record),
		transcripts: make(map[string]TranscriptRecord),
		logger:      logger,
		now:         time.Now,
	}
	if err := s.replay(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) replay() error {
	scanner := bufio.NewScanner(s.f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e fileEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			// a torn write from a crash leaves a partial last line
			s.logger.Warn(context.Background(), fmt.Sprintf("skipping unreadable transcript log line %d: %v", line, err))
			continue
		}
		if e.Call != nil {
			s.calls[e.Call.RoomName] = *e.Call
		}
		if e.Transcript != nil {
			s.transcripts[e.Transcript.RoomName] = *e.Transcript
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read transcript log: %w", err)
	}
	return s.terminateLastLine()
}

// terminateLastLine keeps new entries off a partial last line
func (s *FileStore) terminateLastLine() error {
	info, err := s.f.Stat()
	if err != nil || info.Size() == 0 {
		return err
	}
	last := make([]byte, 1)
	if _, err := s.f.ReadAt(last, info.Size()-1); err != nil {
		return fmt.Errorf("failed to read transcript log: %w", err)
	}
	if last[0] != '\n' {
		_, err = s.f.Write([]byte{'\n'})
	}
	return err
}

// append must be called with mu held
func (s *FileStore) append(e fileEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if _, err := s.f.Write(b); err != nil {
		return err
	}
	return s.f.Sync()
}

func (s *FileStore) SaveCall(ctx context.Context, rec calls.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.calls[rec.RoomName]; ok && rec.EgressID == "" {
		rec.EgressID = prev.EgressID
	}
	if err := s.append(fileEntry{Call: &rec}); err != nil {
		s.logger.Error(ctx, "failed to save call record", err)
		return fmt.Errorf("failed to save call record: %w", err)
	}
	s.calls[rec.RoomName] = rec
	return nil
}

func (s *FileStore) GetCall(_ context.Context, room string) (calls.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.calls[room]
	if !ok {
		return calls.Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *FileStore) SaveTranscript(ctx context.Context, rec TranscriptRecord) (TranscriptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	rec.Status = DeliveryPending
	rec.Attempts = 0
	rec.NextRetryAt = nil
	rec.LastError = ""
	rec.LeaseUntil = nil
	rec.CreatedAt = now
	if prev, ok := s.transcripts[rec.RoomName]; ok {
		rec.CreatedAt = prev.CreatedAt
	}
	rec.UpdatedAt = now

	if err := s.append(fileEntry{Transcript: &rec}); err != nil {
		s.logger.Error(ctx, "failed to save transcript", err)
		return TranscriptRecord{}, fmt.Errorf("failed to save transcript: %w", err)
	}
	s.transcripts[rec.RoomName] = rec
	return rec, nil
}

func (s *FileStore) GetTranscript(_ context.Context, room string) (TranscriptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.transcripts[room]
	if !ok {
		return TranscriptRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *FileStore) RecordDeliveryAttempt(ctx context.Context, room string, attempt DeliveryAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.transcripts[room]
	if !ok {
		return ErrNotFound
	}
	attempt.apply(&rec, s.now().UTC())

	if err := s.append(fileEntry{Transcript: &rec}); err != nil {
		s.logger.Error(ctx, "failed to record delivery attempt", err)
		return fmt.Errorf("failed to record delivery attempt: %w", err)
	}
	s.transcripts[room] = rec
	return nil
}

func (s *FileStore) ClaimDelivery(ctx context.Context, room string, attempts int, until time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.transcripts[room]
	if !ok || rec.Attempts != attempts {
		return false, nil
	}
	if rec.LeaseUntil != nil && rec.LeaseUntil.After(s.now()) {
		return false, nil
	}
	until = until.UTC()
	rec.LeaseUntil = &until

	if err := s.append(fileEntry{Transcript: &rec}); err != nil {
		s.logger.Error(ctx, "failed to claim delivery", err)
		return false, fmt.Errorf("failed to claim delivery: %w", err)
	}
	s.transcripts[room] = rec
	return true, nil
}

func (s *FileStore) ListDueDeliveries(_ context.Context, now, pendingBefore time.Time, limit int) ([]TranscriptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []TranscriptRecord
	for _, rec := range s.transcripts {
		if rec.dueAt(now, pendingBefore) {
			due = append(due, rec)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].retryOrder().Before(due[j].retryOrder()) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return errors.New("transcript log already closed")
	}
	err := s.f.Close()
	s.f = nil
	return err
}
