package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sessiondb "day-planner/internal/session/session_db"
)

// Repository stores sessions in SQLite as JSON state with a sliding expiry.
type Repository struct {
	queries *sessiondb.Queries
	db      *sql.DB
	ttl     time.Duration
	now     func() time.Time
}

// NewRepository creates a Repository whose sessions expire ttl after their
// last save.
func NewRepository(db *sql.DB, ttl time.Duration) *Repository {
	return &Repository{
		queries: sessiondb.New(db),
		db:      db,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves an active (non-expired) session.
func (r *Repository) Get(ctx context.Context, id string) (*Session, error) {
	row, err := r.queries.GetActiveSession(ctx, sessiondb.GetActiveSessionParams{
		ID:        id,
		ExpiresAt: r.now().Unix(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(row.State), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	s.ID = row.ID
	s.Page = Page(row.Page)
	return &s, nil
}

// Save inserts or updates the session and pushes its expiry forward.
func (r *Repository) Save(ctx context.Context, s *Session) error {
	state, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}

	now := r.now()
	err = r.queries.UpsertSession(ctx, sessiondb.UpsertSessionParams{
		ID:        s.ID,
		Page:      string(s.Page),
		State:     string(state),
		ExpiresAt: now.Add(r.ttl).Unix(),
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes a session.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.queries.DeleteSession(ctx, id)
}

// CleanupExpired removes all expired sessions and reports how many were deleted.
func (r *Repository) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := r.queries.CleanupExpiredSessions(ctx, r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}
