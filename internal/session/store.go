package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Store persists sessions. Get returns (nil, nil) for missing or expired IDs.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

type memoryEntry struct {
	state     []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are stored as JSON
// snapshots so callers never share state with the store.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: map[string]memoryEntry{}}
}

// WithClock replaces the time source used for expiry.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	e, ok := m.entries[id]
	m.mu.Unlock()

	if !ok || !e.expiresAt.After(m.now()) {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal(e.state, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{state: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) CleanupExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var n int64
	for id, e := range m.entries {
		if !e.expiresAt.After(now) {
			delete(m.entries, id)
			n++
		}
	}
	return n, nil
}
