// Package calls tracks the calls this service has set up while they are live.
package calls

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Kind tells how a call was started
type Kind string

const (
	KindTest    Kind = "test"
	KindLead    Kind = "lead"
	KindInbound Kind = "inbound"
)

// Record is what we know about a live call
type Record struct {
	RoomName    string    `json:"room_name" db:"room_name"`
	Kind        Kind      `json:"kind" db:"kind"`
	PhoneNumber string    `json:"phone_number,omitempty" db:"phone_number"`
	FirstName   string    `json:"first_name,omitempty" db:"first_name"`
	LastName    string    `json:"last_name,omitempty" db:"last_name"`
	SIPCallID   string    `json:"sip_call_id,omitempty" db:"sip_call_id"`
	EgressID    string    `json:"egress_id,omitempty" db:"egress_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RoomMetadata is the JSON stored on the LiveKit room. It is also read by the agent.
type RoomMetadata struct {
	TestCall        bool   `json:"test_call,omitempty"`
	PhoneCall       bool   `json:"phone_call,omitempty"`
	RoomName        string `json:"room_name,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	InitialGreeting *bool  `json:"initial_greeting,omitempty"`
}

// FromRoomMetadata rebuilds a record for a room this instance did not create,
// e.g. after a restart or when another replica set up the call.
func FromRoomMetadata(roomName, metadata string) Record {
	rec := Record{RoomName: roomName, Kind: KindInbound, CreatedAt: time.Now().UTC()}
	switch {
	case strings.HasPrefix(roomName, "lead_"):
		rec.Kind = KindLead
	case strings.HasPrefix(roomName, "call_"):
		rec.Kind = KindTest
	}

	var meta RoomMetadata
	if metadata != "" && json.Unmarshal([]byte(metadata), &meta) == nil {
		rec.PhoneNumber = meta.PhoneNumber
		rec.FirstName = meta.FirstName
		rec.LastName = meta.LastName
	}
	return rec
}

// Registry is a concurrency-safe map of live calls keyed by room name
type Registry struct {
	mu    sync.RWMutex
	calls map[string]Record
}

func NewRegistry() *Registry {
	return &Registry{calls: make(map[string]Record)}
}

func (r *Registry) Put(rec Record) {
	r.mu.Lock()
	r.calls[rec.RoomName] = rec
	r.mu.Unlock()
}

func (r *Registry) Get(room string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.calls[room]
	return rec, ok
}

// Update applies fn to the record for room. It reports false when the room is unknown.
func (r *Registry) Update(room string, fn func(*Record)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.calls[room]
	if !ok {
		return false
	}
	fn(&rec)
	r.calls[room] = rec
	return true
}

func (r *Registry) Delete(room string) {
	r.mu.Lock()
	delete(r.calls, room)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.calls)
}
