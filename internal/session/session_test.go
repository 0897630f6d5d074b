package session

import (
	"errors"
	"testing"

	"day-planner/internal/catalog"
	"day-planner/internal/planner"
)

func newPlanner() *planner.Generator {
	return planner.NewGenerator(catalog.Default(), planner.NewRand(11))
}

func searched(t *testing.T, p Planner) *Session {
	t.Helper()
	s := New("")
	res, _, err := s.ShowHome(p, planner.Criteria{People: 3, Day: "2026-10-17", Time: "18:00", PlanType: planner.PlanCombo})
	if err != nil {
		t.Fatalf("ShowHome failed: %v", err)
	}
	if !res.Matched() {
		t.Fatal("Expected a featured plan from the default catalog")
	}
	return s
}

func TestNew(t *testing.T) {
	s := New("")
	if s.ID == "" || s.Page != PageHome || !s.IncludeFriends {
		t.Errorf("Unexpected new session: %+v", s)
	}
	if New("abc").ID != "abc" {
		t.Error("Expected the given ID to be kept")
	}
}

func TestBookingFlow(t *testing.T) {
	p := newPlanner()

	t.Run("BookFeaturedAndConfirm", func(t *testing.T) {
		s := searched(t, p)
		featured := *s.Featured

		if err := s.Book(FeaturedIndex); err != nil {
			t.Fatalf("Book failed: %v", err)
		}
		if s.Page != PageCheckout {
			t.Fatalf("Expected checkout page, got %s", s.Page)
		}
		if *s.SelectedPlan != featured {
			t.Errorf("Selected plan %+v differs from featured %+v", s.SelectedPlan, featured)
		}

		view, err := s.Checkout()
		if err != nil {
			t.Fatalf("Checkout failed: %v", err)
		}
		want := "You are heading to: " + featured.Activity + " + " + featured.Restaurant
		if view.Heading != want {
			t.Errorf("Expected heading %q, got %q", want, view.Heading)
		}
		if view.People != 3 || view.Day != "2026-10-17" || view.Time != "18:00" {
			t.Errorf("Unexpected booking snapshot: %+v", view)
		}

		ref, err := s.ConfirmBooking()
		if err != nil {
			t.Fatalf("ConfirmBooking failed: %v", err)
		}
		if ref == "" || s.LastReference != ref {
			t.Errorf("Expected a booking reference, got %q", ref)
		}
		if s.Page != PageHome || s.SelectedPlan != nil {
			t.Errorf("Expected home with no selection, got page=%s selected=%+v", s.Page, s.SelectedPlan)
		}
		if msg := s.TakeFlash(); msg != BookingThanks {
			t.Errorf("Expected thank-you flash, got %q", msg)
		}
		if msg := s.TakeFlash(); msg != "" {
			t.Errorf("Flash should be shown once, got %q", msg)
		}
	})

	t.Run("BookExploreMoreAndGoBack", func(t *testing.T) {
		s := searched(t, p)
		card := s.ExploreMore[2]

		if err := s.Book(2); err != nil {
			t.Fatalf("Book failed: %v", err)
		}
		if *s.SelectedPlan != card {
			t.Errorf("Selected plan %+v differs from card %+v", s.SelectedPlan, card)
		}
		if s.Booking == nil || s.Booking.People != 3 {
			t.Errorf("Expected booking snapshot for explore-more card, got %+v", s.Booking)
		}
		if err := s.BackToSearch(); err != nil {
			t.Fatalf("BackToSearch failed: %v", err)
		}
		if s.Page != PageHome {
			t.Errorf("Expected home, got %s", s.Page)
		}
	})

	t.Run("UnknownIndex", func(t *testing.T) {
		s := searched(t, p)
		for _, i := range []int{-2, 4, 99} {
			if err := s.Book(i); !errors.Is(err, ErrUnknownPlan) {
				t.Errorf("Book(%d): expected ErrUnknownPlan, got %v", i, err)
			}
		}
		if s.Page != PageHome {
			t.Errorf("Failed book should not change page, got %s", s.Page)
		}
	})

	t.Run("ShowHomeOnlyFromHome", func(t *testing.T) {
		s := searched(t, p)
		_ = s.Book(FeaturedIndex)
		if _, _, err := s.ShowHome(p, planner.Criteria{}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("BackOnlyFromCheckout", func(t *testing.T) {
		if err := New("").BackToSearch(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestCheckoutGuards(t *testing.T) {
	t.Run("NoFilters", func(t *testing.T) {
		s := New("")
		s.Page = PageCheckout
		s.SelectedPlan = &planner.Plan{Kind: planner.PlanActivity, Activity: "Bowl"}

		_, err := s.Checkout()
		if !errors.Is(err, ErrFiltersNotSet) {
			t.Fatalf("Expected ErrFiltersNotSet, got %v", err)
		}
		if WarningFor(err) != "Filters not set. Please go back and select your preferences." {
			t.Errorf("Unexpected warning %q", WarningFor(err))
		}
		if _, err := s.ConfirmBooking(); !errors.Is(err, ErrFiltersNotSet) {
			t.Errorf("ConfirmBooking should be blocked, got %v", err)
		}
		if s.Page != PageCheckout {
			t.Errorf("Blocked confirm should not move pages, got %s", s.Page)
		}
	})

	t.Run("NoSelectedPlan", func(t *testing.T) {
		s := New("")
		s.Page = PageCheckout
		s.FiltersToUse = &planner.Criteria{PlanType: planner.PlanFood}

		_, err := s.Checkout()
		if !errors.Is(err, ErrNoPlanSelected) {
			t.Fatalf("Expected ErrNoPlanSelected, got %v", err)
		}
		if WarningFor(err) != "No plan selected. Please go back and select a plan." {
			t.Errorf("Unexpected warning %q", WarningFor(err))
		}
	})

	t.Run("FreshSession", func(t *testing.T) {
		if _, err := New("").Checkout(); !errors.Is(err, ErrFiltersNotSet) {
			t.Errorf("Expected ErrFiltersNotSet, got %v", err)
		}
	})

	t.Run("HeadingFollowsPlanType", func(t *testing.T) {
		s := New("")
		s.Page = PageCheckout
		s.FiltersToUse = &planner.Criteria{PlanType: planner.PlanFood}
		s.SelectedPlan = &planner.Plan{Kind: planner.PlanFood, Restaurant: "Nopa"}
		view, err := s.Checkout()
		if err != nil {
			t.Fatalf("Checkout failed: %v", err)
		}
		if view.Heading != "You are heading to: Nopa" {
			t.Errorf("Unexpected heading %q", view.Heading)
		}
		if view.People != planner.DefaultPeople {
			t.Errorf("Expected default people without a snapshot, got %d", view.People)
		}
	})

	t.Run("WarningForOtherErrors", func(t *testing.T) {
		if WarningFor(errors.New("boom")) != "" {
			t.Error("Expected no warning for unrelated errors")
		}
	})
}

func TestFriends(t *testing.T) {
	p := newPlanner()

	t.Run("AddAndDeduplicate", func(t *testing.T) {
		s := New("")
		if !s.AddFriend(p, " ana@example.com ") {
			t.Fatal("Expected friend to be added")
		}
		if s.AddFriend(p, "ana@example.com") {
			t.Error("Duplicate friend should be a no-op")
		}
		if s.AddFriend(p, "   ") {
			t.Error("Blank contact should be a no-op")
		}
		if len(s.Friends) != 1 || len(s.FriendPrefs) != 1 {
			t.Fatalf("Expected one friend with preferences, got %v / %v", s.Friends, s.FriendPrefs)
		}
		if s.FriendPrefs[0].Contact != "ana@example.com" {
			t.Errorf("Unexpected preference contact %q", s.FriendPrefs[0].Contact)
		}
	})

	t.Run("ResetForcesHome", func(t *testing.T) {
		s := searched(t, p)
		s.AddFriend(p, "bo")
		_ = s.Book(0)
		s.ResetFriends()
		if len(s.Friends) != 0 || len(s.FriendPrefs) != 0 || s.Page != PageHome {
			t.Errorf("Unexpected state after reset: %+v", s)
		}
	})

	t.Run("PreferencesShapeSearch", func(t *testing.T) {
		s := New("")
		s.FriendPrefs = []planner.FriendPreference{{Contact: "x", Vibe: planner.VibeCompetitive, FoodPref: []planner.FoodPref{planner.FoodVegan}}}
		s.Friends = []string{"x"}

		_, eff, err := s.ShowHome(p, planner.Criteria{Vibe: planner.VibeAny, FoodPref: planner.FoodAny})
		if err != nil {
			t.Fatalf("ShowHome failed: %v", err)
		}
		if eff.Vibe != planner.VibeCompetitive || eff.FoodPref != planner.FoodVegan {
			t.Errorf("Expected friend preferences to apply, got %s/%s", eff.Vibe, eff.FoodPref)
		}
		if s.FiltersToUse.Vibe != planner.VibeCompetitive {
			t.Errorf("Expected stored snapshot to hold effective criteria, got %+v", s.FiltersToUse)
		}

		s.SetIncludeFriends(false)
		_, eff, _ = s.ShowHome(p, planner.Criteria{Vibe: planner.VibeAny, FoodPref: planner.FoodAny})
		if eff.Vibe != planner.VibeAny {
			t.Errorf("Expected opt-out to keep the user's vibe, got %s", eff.Vibe)
		}
	})
}

func TestGroupFlow(t *testing.T) {
	p := newPlanner()
	s := New("")

	if err := s.ContinueToPreferences(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition without friends, got %v", err)
	}
	s.AddFriend(p, "ana")

	if _, err := s.GenerateBestMatch(p); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition outside friend_prefs, got %v", err)
	}
	if err := s.ContinueToPreferences(); err != nil {
		t.Fatalf("ContinueToPreferences failed: %v", err)
	}
	if s.Page != PageFriendPrefs {
		t.Fatalf("Expected friend_prefs, got %s", s.Page)
	}

	match, err := s.GenerateBestMatch(p)
	if err != nil {
		t.Fatalf("GenerateBestMatch failed: %v", err)
	}
	if match.Activity == "" || match.Restaurant == "" || s.Page != PageBestMatch {
		t.Errorf("Unexpected best match state: %+v page=%s", match, s.Page)
	}

	ref, err := s.ConfirmBestMatch()
	if err != nil || ref == "" {
		t.Fatalf("ConfirmBestMatch failed: %v", err)
	}
	if s.Page != PageConfirmation {
		t.Errorf("Expected confirmation, got %s", s.Page)
	}

	if err := s.GoHome(); err != nil || s.Page != PageHome {
		t.Errorf("GoHome failed: %v page=%s", err, s.Page)
	}

	s.Page = PageCheckout
	if err := s.GoHome(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected GoHome to refuse checkout, got %v", err)
	}
}
