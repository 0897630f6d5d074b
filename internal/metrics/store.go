package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "day-planner/internal/metrics/metrics_db"
)

// PlanMetric records one plan generation.
type PlanMetric struct {
	PlanType       string
	Vibe           string
	FoodPref       string
	ActivityPool   int
	RestaurantPool int
	Matched        bool
	Latency        time.Duration
	Timestamp      time.Time
}

// Recorder is the write side of Store.
type Recorder interface {
	Record(ctx context.Context, m PlanMetric) error
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m PlanMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var matched int64
	if m.Matched {
		matched = 1
	}

	err := s.queries.InsertPlanMetric(ctx, metricsdb.InsertPlanMetricParams{
		PlanType:       m.PlanType,
		Vibe:           m.Vibe,
		FoodPref:       m.FoodPref,
		ActivityPool:   int64(m.ActivityPool),
		RestaurantPool: int64(m.RestaurantPool),
		Matched:        matched,
		LatencyUs:      m.Latency.Microseconds(),
		CreatedAt:      ts.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to record plan metric: %w", err)
	}
	return nil
}

// DailyUsage summarizes plan generations for a single day.
type DailyUsage struct {
	Date       string
	Plans      int
	Matched    int
	AvgLatency time.Duration
}

// MatchRate is the share of generations that produced a featured plan.
func (u DailyUsage) MatchRate() float64 {
	if u.Plans == 0 {
		return 0
	}
	return float64(u.Matched) / float64(u.Plans)
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).Unix()
	rows, err := s.queries.GetDailyUsage(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	results := make([]DailyUsage, 0, len(rows))
	for _, r := range rows {
		u := DailyUsage{
			Date:  r.Day,
			Plans: int(r.Count),
		}
		if r.Matched.Valid {
			u.Matched = int(r.Matched.Int64)
		}
		if r.AvgLatencyUs.Valid {
			u.AvgLatency = time.Duration(r.AvgLatencyUs.Float64) * time.Microsecond
		}
		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays).Unix()
	n, err := s.queries.CleanupPlanMetrics(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup plan metrics: %w", err)
	}
	return n, nil
}
