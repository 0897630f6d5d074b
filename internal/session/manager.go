package session

import (
	"context"
	"fmt"
	"sync"
)

// Manager loads, mutates and saves sessions, serializing work per session ID.
type Manager struct {
	store Store

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, locks: map[string]*keyLock{}}
}

// Get returns the session for id, or a fresh one (not yet saved) when it does
// not exist or has expired. Reading an existing session pushes its expiry
// forward like any other activity.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s, found, err := m.load(ctx, id)
	if err != nil || !found {
		return s, err
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}
	return s, nil
}

// Update runs fn on the session for id while holding its lock. The session is
// created when missing and saved only when fn succeeds.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s, _, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(s); err != nil {
		return s, err
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// Delete drops the session for id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// Cleanup removes expired sessions from the store.
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	return m.store.CleanupExpired(ctx)
}

func (m *Manager) load(ctx context.Context, id string) (*Session, bool, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if s == nil {
		return New(id), false, nil
	}
	return s, true, nil
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &keyLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
