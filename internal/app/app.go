package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"day-planner/internal/metrics"
	"day-planner/internal/planner"
	"day-planner/internal/session"
)

const (
	NoMatchMessage = "No matches found for your selected filters and friends' preferences. " +
		"Try changing filters or friends preferences."
	Disclaimer = "Disclaimer: All data and recommendations are for demonstration purposes only. " +
		"Side effects may include spontaneous hunger, wanderlust, and an overwhelming urge to plan the best day ever. " +
		"Proceed with caution. 🍕"
)

// MetricsStore is the part of metrics.Store the app needs.
type MetricsStore interface {
	metrics.Recorder
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// App holds the application's dependencies and is shared by every
// presentation layer.
type App struct {
	generator *planner.Generator
	sessions  *session.Manager
	metrics   MetricsStore
	narrator  *planner.Narrator
	now       func() time.Time
}

// NewApp creates and initializes a new App instance. metricsStore and
// narrator are optional.
func NewApp(
	generator *planner.Generator,
	sessions *session.Manager,
	metricsStore MetricsStore,
	narrator *planner.Narrator,
) *App {
	return &App{
		generator: generator,
		sessions:  sessions,
		metrics:   metricsStore,
		narrator:  narrator,
		now:       time.Now,
	}
}

// PlanView is one rendered search result.
type PlanView struct {
	Criteria    planner.Criteria `json:"criteria"`
	Featured    *planner.Plan    `json:"featured"`
	ExploreMore []planner.Plan   `json:"explore_more"`
	Cards       []planner.Card   `json:"cards"`
	Message     string           `json:"message,omitempty"`
}

// Plan runs a one-off search without touching any session.
func (a *App) Plan(ctx context.Context, c planner.Criteria) (PlanView, error) {
	c = c.Normalize(a.now())
	if err := c.Validate(); err != nil {
		return PlanView{}, err
	}

	start := time.Now()
	res := a.generator.Generate(c)
	a.record(ctx, c, res, time.Since(start))
	return a.view(ctx, c, res), nil
}

// HomeView is the home page after a search.
type HomeView struct {
	PlanView
	Session *session.Session `json:"session"`
	Flash   string           `json:"flash,omitempty"`
}

// ShowHome runs a search for the session. includeFriends, when set, updates
// the session's opt-in toggle first.
func (a *App) ShowHome(ctx context.Context, id string, c planner.Criteria, includeFriends *bool) (HomeView, error) {
	c = c.Normalize(a.now())
	if err := c.Validate(); err != nil {
		return HomeView{}, err
	}

	var (
		res       planner.Result
		effective planner.Criteria
		flash     string
		elapsed   time.Duration
	)
	s, err := a.sessions.Update(ctx, id, func(s *session.Session) error {
		if includeFriends != nil {
			s.SetIncludeFriends(*includeFriends)
		}

		start := time.Now()
		var err error
		res, effective, err = s.ShowHome(a.generator, c)
		if err != nil {
			return err
		}
		elapsed = time.Since(start)

		if res.Featured != nil {
			a.narrate(ctx, effective, res.Featured)
		}
		flash = s.TakeFlash()
		return nil
	})
	if err != nil {
		return HomeView{Session: s}, err
	}

	a.record(ctx, effective, res, elapsed)
	return HomeView{
		PlanView: a.view(ctx, effective, res),
		Session:  s,
		Flash:    flash,
	}, nil
}

func (a *App) view(ctx context.Context, c planner.Criteria, res planner.Result) PlanView {
	v := PlanView{
		Criteria:    c,
		Featured:    res.Featured,
		ExploreMore: res.ExploreMore,
		Cards:       a.generator.Decorate(res.Featured, res.ExploreMore),
	}
	if !res.Matched() {
		v.Message = NoMatchMessage
	}
	return v
}

// narrate replaces the templated reasoning when a narrator is configured.
// Failures keep the template.
func (a *App) narrate(ctx context.Context, c planner.Criteria, p *planner.Plan) {
	if a.narrator == nil {
		return
	}
	text, _, err := a.narrator.Narrate(ctx, c, p)
	if err != nil {
		log.Printf("Warning: failed to narrate plan: %v", err)
		return
	}
	p.Reasoning = text
}

func (a *App) record(ctx context.Context, c planner.Criteria, res planner.Result, elapsed time.Duration) {
	if a.metrics == nil {
		return
	}
	err := a.metrics.Record(ctx, metrics.PlanMetric{
		PlanType:       string(c.PlanType.Resolve()),
		Vibe:           string(c.Vibe),
		FoodPref:       string(c.FoodPref),
		ActivityPool:   res.ActivityPool,
		RestaurantPool: res.RestaurantPool,
		Matched:        res.Matched(),
		Latency:        elapsed,
	})
	if err != nil {
		log.Printf("Warning: failed to record plan metrics: %v", err)
	}
}

// Session returns the current state for id without saving it.
func (a *App) Session(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Get(ctx, id)
}

// Book selects a plan shown on the home page.
func (a *App) Book(ctx context.Context, id string, index int) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		return s.Book(index)
	})
}

// Checkout returns the checkout view or a guard error.
func (a *App) Checkout(ctx context.Context, id string) (session.CheckoutView, error) {
	s, err := a.sessions.Get(ctx, id)
	if err != nil {
		return session.CheckoutView{}, err
	}
	return s.Checkout()
}

// BackToSearch leaves checkout.
func (a *App) BackToSearch(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		return s.BackToSearch()
	})
}

// Booking is the result of a confirmed booking.
type Booking struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// ConfirmBooking completes checkout.
func (a *App) ConfirmBooking(ctx context.Context, id string) (Booking, error) {
	var ref string
	_, err := a.sessions.Update(ctx, id, func(s *session.Session) error {
		var err error
		ref, err = s.ConfirmBooking()
		return err
	})
	if err != nil {
		return Booking{}, err
	}
	log.Printf("Booking %s confirmed for session %s", ref, id)
	return Booking{Reference: ref, Message: session.BookingThanks}, nil
}

// AddFriend invites a friend and returns the updated session and whether the
// list changed.
func (a *App) AddFriend(ctx context.Context, id, contact string) (*session.Session, bool, error) {
	var added bool
	s, err := a.sessions.Update(ctx, id, func(s *session.Session) error {
		added = s.AddFriend(a.generator, contact)
		return nil
	})
	return s, added, err
}

// ResetFriends clears the invite list.
func (a *App) ResetFriends(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		s.ResetFriends()
		return nil
	})
}

// SetIncludeFriends toggles the friends' preferences opt-in.
func (a *App) SetIncludeFriends(ctx context.Context, id string, on bool) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		s.SetIncludeFriends(on)
		return nil
	})
}

// ContinueToPreferences opens the group preferences page.
func (a *App) ContinueToPreferences(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		return s.ContinueToPreferences()
	})
}

// GenerateBestMatch picks the group plan.
func (a *App) GenerateBestMatch(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		_, err := s.GenerateBestMatch(a.generator)
		return err
	})
}

// ConfirmBestMatch books the group plan.
func (a *App) ConfirmBestMatch(ctx context.Context, id string) (Booking, error) {
	var ref string
	_, err := a.sessions.Update(ctx, id, func(s *session.Session) error {
		var err error
		ref, err = s.ConfirmBestMatch()
		return err
	})
	if err != nil {
		return Booking{}, err
	}
	log.Printf("Group booking %s confirmed for session %s", ref, id)
	return Booking{Reference: ref, Message: session.GroupBookingMsg}, nil
}

// GoHome leaves any group flow page.
func (a *App) GoHome(ctx context.Context, id string) (*session.Session, error) {
	return a.sessions.Update(ctx, id, func(s *session.Session) error {
		return s.GoHome()
	})
}

// CleanupSessions removes expired sessions.
func (a *App) CleanupSessions(ctx context.Context) (int64, error) {
	n, err := a.sessions.Cleanup(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}

// DailyUsage reports plan generations for the last days.
func (a *App) DailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	if a.metrics == nil {
		return nil, fmt.Errorf("metrics store not configured")
	}
	return a.metrics.GetDailyUsage(ctx, days)
}
