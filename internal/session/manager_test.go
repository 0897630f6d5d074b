package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestManagerUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(time.Hour))

	t.Run("CreatesAndSaves", func(t *testing.T) {
		s, err := m.Update(ctx, "u1", func(s *Session) error {
			s.Friends = append(s.Friends, "ana")
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if s.ID != "u1" {
			t.Errorf("Expected ID u1, got %s", s.ID)
		}
		got, _ := m.Get(ctx, "u1")
		if len(got.Friends) != 1 {
			t.Errorf("Expected saved friend, got %v", got.Friends)
		}
	})

	t.Run("ErrorSkipsSave", func(t *testing.T) {
		_, err := m.Update(ctx, "u1", func(s *Session) error {
			s.Friends = append(s.Friends, "bo")
			return ErrInvalidTransition
		})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
		got, _ := m.Get(ctx, "u1")
		if len(got.Friends) != 1 {
			t.Errorf("Failed update should not be saved, got %v", got.Friends)
		}
	})

	t.Run("SerializesPerKey", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = m.Update(ctx, "shared", func(s *Session) error {
					s.Friends = append(s.Friends, fmt.Sprintf("f%d", i))
					return nil
				})
			}()
		}
		wg.Wait()

		got, _ := m.Get(ctx, "shared")
		if len(got.Friends) != 50 {
			t.Errorf("Expected 50 friends after concurrent updates, got %d", len(got.Friends))
		}
		if len(m.locks) != 0 {
			t.Errorf("Expected lock table to drain, got %d entries", len(m.locks))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := m.Delete(ctx, "u1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		got, _ := m.Get(ctx, "u1")
		if len(got.Friends) != 0 {
			t.Error("Expected a fresh session after delete")
		}
	})
}

func TestManagerGetExtendsExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute).WithClock(func() time.Time { return now })
	m := NewManager(store)

	if _, err := m.Update(ctx, "u1", func(s *Session) error {
		s.Friends = append(s.Friends, "ana")
		return nil
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// Reads alone keep the session alive past the original expiry.
	for range 3 {
		now = now.Add(6 * time.Minute)
		got, err := m.Get(ctx, "u1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Friends) != 1 {
			t.Fatalf("Expected the session to survive at %s, got %+v", now.Format(time.Kitchen), got)
		}
	}

	now = now.Add(11 * time.Minute)
	got, _ := m.Get(ctx, "u1")
	if len(got.Friends) != 0 {
		t.Errorf("Expected an idle session to expire, got %v", got.Friends)
	}
	if stored, _ := store.Get(ctx, "u1"); stored != nil {
		t.Error("Reading a missing session should not save it")
	}
}
