package planner

import (
	"reflect"
	"testing"
)

func TestCombinePreferences(t *testing.T) {
	base := Criteria{
		City:      "San Francisco",
		People:    4,
		Vibe:      VibeAny,
		FoodPref:  FoodAny,
		Allergens: []string{"Dairy"},
	}
	friends := []FriendPreference{
		{Contact: "a", Vibe: VibeRelaxed, FoodPref: []FoodPref{FoodSeafood}},
		{Contact: "b", Vibe: VibeCompetitive, FoodPref: []FoodPref{FoodVegan}},
		{Contact: "c", Vibe: VibeRelaxed, FoodPref: []FoodPref{FoodSeafood}},
	}

	t.Run("NoFriendsIsIdentity", func(t *testing.T) {
		got := CombinePreferences(base, nil, true)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("Expected unchanged criteria, got %+v", got)
		}
	})

	t.Run("OptOutIsIdentity", func(t *testing.T) {
		got := CombinePreferences(base, friends, false)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("Expected unchanged criteria, got %+v", got)
		}
	})

	t.Run("FirstFriendWinsWhenUserIsAny", func(t *testing.T) {
		got := CombinePreferences(base, friends, true)
		if got.Vibe != VibeRelaxed || got.FoodPref != FoodSeafood {
			t.Errorf("Expected Relaxed/Seafood, got %s/%s", got.Vibe, got.FoodPref)
		}
		if got.People != 4 || got.City != "San Francisco" {
			t.Errorf("Unrelated fields changed: %+v", got)
		}
	})

	t.Run("UserChoiceComesFirst", func(t *testing.T) {
		c := base
		c.Vibe = VibeRomantic
		c.FoodPref = FoodMeatLover
		got := CombinePreferences(c, friends, true)
		if got.Vibe != VibeRomantic || got.FoodPref != FoodMeatLover {
			t.Errorf("Expected the user's own choices, got %s/%s", got.Vibe, got.FoodPref)
		}
	})

	t.Run("DoesNotAliasAllergens", func(t *testing.T) {
		got := CombinePreferences(base, friends, true)
		got.Allergens[0] = "Soy"
		if base.Allergens[0] != "Dairy" {
			t.Error("Combined criteria share the allergen slice with the input")
		}
	})
}

func TestCandidateLists(t *testing.T) {
	c := Criteria{Vibe: VibeFun, FoodPref: FoodAny}
	friends := []FriendPreference{
		{Vibe: VibeRelaxed, FoodPref: []FoodPref{FoodVegan}},
		{Vibe: VibeFun, FoodPref: []FoodPref{FoodVegan, FoodSeafood}},
		{Vibe: VibeAny},
	}

	vibes := CandidateVibes(c, friends)
	if !reflect.DeepEqual(vibes, []Vibe{VibeFun, VibeRelaxed}) {
		t.Errorf("Unexpected vibes %v", vibes)
	}
	foods := CandidateFoodPrefs(c, friends)
	if !reflect.DeepEqual(foods, []FoodPref{FoodVegan, FoodSeafood}) {
		t.Errorf("Unexpected food preferences %v", foods)
	}

	if got := CandidateVibes(Criteria{Vibe: VibeAny}, nil); len(got) != 0 {
		t.Errorf("Expected no candidates, got %v", got)
	}
}

func TestFriendPreferenceDescribe(t *testing.T) {
	f := FriendPreference{Contact: "ana", Vibe: VibeFun, FoodPref: []FoodPref{FoodSeafood}}
	if got := f.Describe(); got != "Demo: ana prefers Fun vibes and Seafood food." {
		t.Errorf("Unexpected description %q", got)
	}
}
