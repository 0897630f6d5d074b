package session

import (
	"fmt"
	"slices"
	"strings"

	"day-planner/internal/planner"

	"github.com/google/uuid"
)

// Page is a screen of the booking flow.
type Page string

const (
	PageHome         Page = "home"
	PageCheckout     Page = "checkout"
	PageFriendPrefs  Page = "friend_prefs"
	PageBestMatch    Page = "best_match"
	PageConfirmation Page = "confirmation"
)

// FeaturedIndex books the featured plan instead of an explore-more card.
const FeaturedIndex = -1

const (
	BookingThanks   = "Thank you for your booking. Have the best time!"
	GroupBookingMsg = "Booking confirmed! Have an amazing day out!"
)

// Planner is the part of the plan generator a session drives.
type Planner interface {
	Generate(c planner.Criteria) planner.Result
	BestMatch() *planner.Plan
	DemoFriendPreference(contact string) planner.FriendPreference
}

// Booking is the people/day/time snapshot taken when a plan is booked.
type Booking struct {
	People int    `json:"people"`
	Day    string `json:"day"`
	Time   string `json:"time,omitempty"`
}

// Session is the state of one user's interaction. It is not safe for
// concurrent use; Manager serializes access per ID.
type Session struct {
	ID             string                     `json:"id"`
	Page           Page                       `json:"page"`
	Friends        []string                   `json:"friends"`
	FriendPrefs    []planner.FriendPreference `json:"friend_prefs"`
	IncludeFriends bool                       `json:"include_friends"`
	FiltersToUse   *planner.Criteria          `json:"filters_to_use,omitempty"`
	Featured       *planner.Plan              `json:"featured,omitempty"`
	ExploreMore    []planner.Plan             `json:"explore_more"`
	SelectedPlan   *planner.Plan              `json:"selected_plan,omitempty"`
	Booking        *Booking                   `json:"booking,omitempty"`
	BestMatch      *planner.Plan              `json:"best_match,omitempty"`
	Flash          string                     `json:"flash,omitempty"`
	LastReference  string                     `json:"last_reference,omitempty"`
}

// New returns a session on the home page with friends' preferences included.
func New(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:             id,
		Page:           PageHome,
		Friends:        []string{},
		FriendPrefs:    []planner.FriendPreference{},
		IncludeFriends: true,
		ExploreMore:    []planner.Plan{},
	}
}

// ShowHome runs a search from the home page. The effective criteria (after
// folding in friends' preferences) and the results are kept for booking.
func (s *Session) ShowHome(p Planner, c planner.Criteria) (planner.Result, planner.Criteria, error) {
	if s.Page != PageHome {
		return planner.Result{}, planner.Criteria{}, ErrInvalidTransition
	}

	effective := planner.CombinePreferences(c, s.FriendPrefs, s.IncludeFriends)
	res := p.Generate(effective)

	s.FiltersToUse = &effective
	s.Featured = res.Featured
	s.ExploreMore = res.ExploreMore
	return res, effective, nil
}

// TakeFlash returns the one-time message and clears it.
func (s *Session) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

// Book selects the featured plan (FeaturedIndex) or an explore-more card and
// moves to checkout.
func (s *Session) Book(index int) error {
	if s.Page != PageHome {
		return ErrInvalidTransition
	}

	var plan *planner.Plan
	switch {
	case index == FeaturedIndex && s.Featured != nil:
		p := *s.Featured
		plan = &p
	case index >= 0 && index < len(s.ExploreMore):
		p := s.ExploreMore[index]
		plan = &p
	default:
		return fmt.Errorf("%w: index %d", ErrUnknownPlan, index)
	}

	s.SelectedPlan = plan
	if s.FiltersToUse != nil {
		s.Booking = &Booking{
			People: s.FiltersToUse.People,
			Day:    s.FiltersToUse.Day,
			Time:   s.FiltersToUse.Time,
		}
	}
	s.Page = PageCheckout
	return nil
}

// CheckoutView is what the checkout page shows.
type CheckoutView struct {
	Plan    planner.Plan `json:"plan"`
	Heading string       `json:"heading"`
	People  int          `json:"people"`
	Day     string       `json:"day"`
	Time    string       `json:"time,omitempty"`
}

// Checkout validates the checkout prerequisites in order: a filter snapshot,
// a selected plan, then the page itself.
func (s *Session) Checkout() (CheckoutView, error) {
	if s.FiltersToUse == nil {
		return CheckoutView{}, ErrFiltersNotSet
	}
	if s.SelectedPlan == nil {
		return CheckoutView{}, ErrNoPlanSelected
	}
	if s.Page != PageCheckout {
		return CheckoutView{}, ErrInvalidTransition
	}

	view := CheckoutView{
		Plan:    *s.SelectedPlan,
		Heading: "You are heading to: " + headingFor(s.FiltersToUse.PlanType, *s.SelectedPlan),
		People:  planner.DefaultPeople,
	}
	if s.Booking != nil {
		view.People = s.Booking.People
		view.Day = s.Booking.Day
		view.Time = s.Booking.Time
	}
	return view, nil
}

func headingFor(t planner.PlanType, p planner.Plan) string {
	switch t.Resolve() {
	case planner.PlanActivity:
		return p.Activity
	case planner.PlanFood:
		return p.Restaurant
	}
	return p.Activity + " + " + p.Restaurant
}

// BackToSearch returns from checkout to home.
func (s *Session) BackToSearch() error {
	if s.Page != PageCheckout {
		return ErrInvalidTransition
	}
	s.Page = PageHome
	return nil
}

// ConfirmBooking completes checkout and returns a booking reference. The
// thank-you message is shown once on the next home render.
func (s *Session) ConfirmBooking() (string, error) {
	if _, err := s.Checkout(); err != nil {
		return "", err
	}

	ref := uuid.NewString()
	s.Page = PageHome
	s.Flash = BookingThanks
	s.SelectedPlan = nil
	s.Booking = nil
	s.LastReference = ref
	return ref, nil
}

// AddFriend invites contact and attributes demo preferences to them. Blank
// and already-invited contacts are ignored; the return reports whether the
// list changed.
func (s *Session) AddFriend(p Planner, contact string) bool {
	contact = strings.TrimSpace(contact)
	if contact == "" || slices.Contains(s.Friends, contact) {
		return false
	}
	s.Friends = append(s.Friends, contact)
	s.FriendPrefs = append(s.FriendPrefs, p.DemoFriendPreference(contact))
	return true
}

// ResetFriends clears friends and their preferences and forces the home page.
func (s *Session) ResetFriends() {
	s.Friends = []string{}
	s.FriendPrefs = []planner.FriendPreference{}
	s.BestMatch = nil
	s.Page = PageHome
}

// SetIncludeFriends toggles whether friends' preferences shape the search.
func (s *Session) SetIncludeFriends(on bool) {
	s.IncludeFriends = on
}

// ContinueToPreferences opens the group preferences page.
func (s *Session) ContinueToPreferences() error {
	if s.Page != PageHome || len(s.Friends) == 0 {
		return ErrInvalidTransition
	}
	s.Page = PageFriendPrefs
	return nil
}

// GenerateBestMatch picks a group plan from the full catalog.
func (s *Session) GenerateBestMatch(p Planner) (*planner.Plan, error) {
	if s.Page != PageFriendPrefs {
		return nil, ErrInvalidTransition
	}
	match := p.BestMatch()
	if match == nil {
		return nil, ErrUnknownPlan
	}
	s.BestMatch = match
	s.Page = PageBestMatch
	return match, nil
}

// ConfirmBestMatch books the group plan.
func (s *Session) ConfirmBestMatch() (string, error) {
	if s.Page != PageBestMatch || s.BestMatch == nil {
		return "", ErrInvalidTransition
	}
	ref := uuid.NewString()
	s.Page = PageConfirmation
	s.LastReference = ref
	return ref, nil
}

// GoHome leaves any extension page. Checkout uses BackToSearch instead.
func (s *Session) GoHome() error {
	switch s.Page {
	case PageFriendPrefs, PageBestMatch, PageConfirmation:
		s.Page = PageHome
		return nil
	case PageHome:
		return nil
	}
	return ErrInvalidTransition
}
